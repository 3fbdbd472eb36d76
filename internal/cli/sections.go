package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/layout"
	"github.com/rileyhilliard/insights/internal/store"
	"github.com/rileyhilliard/insights/internal/ui"
)

// SectionRow is one section in list output.
type SectionRow struct {
	Position    int    `json:"position"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// RevisionRow is one saved layout in history output.
type RevisionRow struct {
	ID         string   `json:"id"`
	SavedAt    string   `json:"savedAt"`
	LayoutMode string   `json:"layoutMode"`
	Shown      []string `json:"shown"`
}

// shortIDLen is how much of a revision id history prints.
const shortIDLen = 8

func sectionRows(r layout.Registry) []SectionRow {
	snap := r.Snapshot()
	rows := make([]SectionRow, len(snap))
	for i, s := range snap {
		rows[i] = SectionRow{
			Position:    i + 1,
			ID:          s.ID,
			Title:       s.Title,
			Enabled:     s.Enabled,
			Description: s.Description,
		}
	}
	return rows
}

// renderSections prints the layout as a table, or JSON in machine mode.
func renderSections(w io.Writer, r layout.Registry) error {
	rows := sectionRows(r)
	if machineMode {
		return WriteJSONSuccess(w, rows)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		shown := ui.SymbolDisabled + " hidden"
		if row.Enabled {
			shown = ui.SymbolEnabled + " shown"
		}
		cells[i] = []string{strconv.Itoa(row.Position), row.Title, row.ID, shown, row.Description}
	}
	cols := ui.FitColumns([]ui.TableColumn{
		{Title: "#", Width: 2},
		{Title: "Section", Width: 8},
		{Title: "ID", Width: 4},
		{Title: "Shown", Width: 6},
		{Title: "Description", Width: 12},
	}, cells, 48)
	fmt.Fprintln(w, ui.RenderSimpleTable(cols, cells))
	return nil
}

// requireSection checks id is in the catalog.
func requireSection(r layout.Registry, id string) error {
	if r.Has(id) {
		return nil
	}
	var ids []string
	for _, s := range r.Snapshot() {
		ids = append(ids, s.ID)
	}
	return errors.New(errors.ErrLayout,
		fmt.Sprintf("Unknown section '%s'", id),
		"Valid sections: "+strings.Join(ids, ", "))
}

// saveLayout applies r to the loaded config, saves it, and prints the result.
func saveLayout(w io.Writer, wf *WorkflowContext, r layout.Registry, done string) error {
	cfg := wf.Config.Clone()
	cfg.ApplyRegistry(r)
	if err := wf.Save(cfg); err != nil {
		return err
	}
	if !machineMode && !quiet {
		fmt.Fprintf(w, "%s %s\n\n", ui.SymbolSuccess, done)
	}
	return renderSections(w, r)
}

func sectionsListCommand(w io.Writer) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()
	printHeader(w, wf)
	return renderSections(w, wf.Config.Registry())
}

// sectionsSetCommand toggles each id, or forces it to enabled when
// enabled is non-nil.
func sectionsSetCommand(w io.Writer, ids []string, enabled *bool) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	r := wf.Config.Registry()
	for _, id := range ids {
		if err := requireSection(r, id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		if enabled == nil {
			r = r.Toggle(id)
		} else {
			r = r.SetEnabled(id, *enabled)
		}
	}

	verb := "Toggled"
	if enabled != nil && *enabled {
		verb = "Showing"
	} else if enabled != nil {
		verb = "Hid"
	}
	return saveLayout(w, wf, r, fmt.Sprintf("%s %s", verb, strings.Join(ids, ", ")))
}

func sectionsMoveCommand(w io.Writer, id, position string) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	r := wf.Config.Registry()
	if err := requireSection(r, id); err != nil {
		return err
	}
	dest, err := ParsePosition(position, r.Len())
	if err != nil {
		return err
	}

	r = r.Move(r.IndexOf(id), layout.Index(dest))
	s, _ := r.Get(id)
	return saveLayout(w, wf, r, fmt.Sprintf("Moved %s to position %d", s.Title, dest+1))
}

func sectionsResetCommand(w io.Writer) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	return saveLayout(w, wf, layout.NewRegistry(layout.DefaultCatalog()), "Restored the default layout")
}

func revisionRow(rev store.Revision) RevisionRow {
	row := RevisionRow{
		ID:         rev.ID,
		SavedAt:    rev.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
		LayoutMode: rev.Config.LayoutMode,
	}
	for _, s := range rev.Config.Registry().Enabled() {
		row.Shown = append(row.Shown, s.ID)
	}
	return row
}

func sectionsHistoryCommand(w io.Writer, limit int) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	db, err := wf.SQLite()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	revs, err := db.Revisions(ctx, limit)
	if err != nil {
		return err
	}

	rows := make([]RevisionRow, len(revs))
	for i, rev := range revs {
		rows[i] = revisionRow(rev)
	}
	if machineMode {
		return WriteJSONSuccess(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No saved layouts for profile '%s' yet.\n", db.Profile())
		return nil
	}

	cells := make([][]string, len(revs))
	for i, rev := range revs {
		cells[i] = []string{
			rev.ID[:min(shortIDLen, len(rev.ID))],
			humanize.Time(rev.SavedAt),
			rev.Config.LayoutMode,
			fmt.Sprintf("%d/%d", len(rows[i].Shown), rev.Config.Registry().Len()),
		}
	}
	cols := ui.FitColumns([]ui.TableColumn{
		{Title: "Revision", Width: shortIDLen},
		{Title: "Saved", Width: 8},
		{Title: "Layout", Width: 6},
		{Title: "Shown", Width: 5},
	}, cells, 24)
	fmt.Fprintln(w, ui.RenderSimpleTable(cols, cells))
	return nil
}

// resolveRevision finds the revision whose id equals or uniquely starts
// with ref.
func resolveRevision(revs []store.Revision, ref string) (store.Revision, error) {
	ref = strings.TrimSpace(ref)
	var matches []store.Revision
	for _, rev := range revs {
		if rev.ID == ref {
			return rev, nil
		}
		if ref != "" && strings.HasPrefix(rev.ID, ref) {
			matches = append(matches, rev)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return store.Revision{}, errors.New(errors.ErrStore,
			fmt.Sprintf("Revision %s not found", ref),
			"Run 'insights sections history' to list saved revisions")
	default:
		return store.Revision{}, errors.New(errors.ErrStore,
			fmt.Sprintf("Revision prefix '%s' matches %d revisions", ref, len(matches)),
			"Use more characters of the revision id")
	}
}

func sectionsRestoreCommand(w io.Writer, ref string) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	db, err := wf.SQLite()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	rev, err := db.Revision(ctx, strings.TrimSpace(ref))
	if err != nil {
		revs, listErr := db.Revisions(ctx, 0)
		if listErr != nil {
			return listErr
		}
		if rev, err = resolveRevision(revs, ref); err != nil {
			return err
		}
	}

	// Restoring saves the old state as the newest revision, so it can be
	// undone the same way.
	cfg := rev.Config.Clone()
	if err := wf.Save(cfg); err != nil {
		return err
	}
	if !machineMode && !quiet {
		fmt.Fprintf(w, "%s Restored revision %s\n\n", ui.SymbolSuccess, rev.ID[:min(shortIDLen, len(rev.ID))])
	}
	return renderSections(w, cfg.Registry())
}

// sectionsPruneCommand keeps the newest keep revisions and deletes the rest.
func sectionsPruneCommand(w io.Writer, keep int) error {
	if keep < 1 {
		return errors.New(errors.ErrStore,
			fmt.Sprintf("--keep must be at least 1, got %d", keep),
			"The newest revision is the current layout.")
	}
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	db, err := wf.SQLite()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	removed, err := db.Prune(ctx, keep)
	if err != nil {
		return err
	}
	if machineMode {
		return WriteJSONSuccess(w, map[string]int64{"removed": removed})
	}
	if !quiet {
		fmt.Fprintf(w, "%s Removed %s\n", ui.SymbolSuccess, english.Plural(int(removed), "revision", "revisions"))
	}
	return nil
}

// layoutModeCommand switches between grid and list layout.
func layoutModeCommand(w io.Writer, mode string) error {
	if !slices.Contains(config.LayoutModes, mode) {
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("Unknown layout mode '%s'", mode),
			"Use 'grid' or 'list'.")
	}
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	cfg := wf.Config.Clone()
	cfg.LayoutMode = mode
	if err := wf.Save(cfg); err != nil {
		return err
	}
	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"layoutMode": mode})
	}
	if !quiet {
		fmt.Fprintf(w, "%s Layout mode set to %s\n", ui.SymbolSuccess, mode)
	}
	return nil
}
