package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/dashboard"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/ui"
)

// CampaignsOptions holds the campaigns command flags. Patch only carries
// the filters given on the command line; the rest come from the saved
// dashboard filters.
type CampaignsOptions struct {
	Patch   campaign.Patch
	Sort    string // Column key; empty keeps the saved sort
	Desc    bool
	AsOf    string // YYYY-MM-DD; empty uses the dataset's date
	Dataset string // Overrides the configured dataset
	Limit   int
}

// CampaignsOutput is the --json payload of the campaigns command.
type CampaignsOutput struct {
	Criteria campaign.Criteria  `json:"criteria"`
	Sort     *campaign.SortSpec `json:"sort,omitempty"`
	AsOf     string             `json:"asOf"`
	Total    int                `json:"total"`
	Rows     []campaign.Row     `json:"rows"`
	Summary  campaign.Summary   `json:"summary"`
}

// resolveSort combines the --sort/--desc flags with the saved sort.
func resolveSort(saved *campaign.SortSpec, key string, desc bool) (*campaign.SortSpec, error) {
	if key == "" {
		if saved == nil {
			if desc {
				return nil, errors.New(errors.ErrFilter,
					"--desc needs a sort column",
					"Add --sort, for example --sort revenue --desc.")
			}
			return nil, nil
		}
		spec := *saved
		if desc {
			spec.Direction = campaign.Desc
		}
		return &spec, nil
	}

	if !campaign.IsField(key) {
		return nil, errors.New(errors.ErrFilter,
			fmt.Sprintf("Cannot sort by '%s': no such column", key),
			"Sortable columns: campaign, clicks, impressions, ctr, conversions, revenue, status, date, source")
	}
	dir := campaign.Asc
	if desc {
		dir = campaign.Desc
	}
	return &campaign.SortSpec{Key: key, Direction: dir}, nil
}

func campaignsCommand(w io.Writer, opts CampaignsOptions) error {
	wf, err := SetupWorkflow(WorkflowOptions{ConfigPath: Config()})
	if err != nil {
		return err
	}
	defer wf.Close()

	criteria := wf.Config.Filters.With(opts.Patch)
	if err := criteria.Validate(); err != nil {
		return err
	}
	spec, err := resolveSort(wf.Config.Sort, opts.Sort, opts.Desc)
	if err != nil {
		return err
	}

	path := wf.Config.Dataset
	if opts.Dataset != "" {
		path = opts.Dataset
	}
	ds, err := campaign.LoadDataset(path)
	if err != nil {
		return err
	}

	asOf, err := ParseAsOf(opts.AsOf)
	if err != nil {
		return err
	}
	if asOf.IsZero() {
		asOf = ds.Reference(time.Now())
	}

	rows := campaign.View(ds.Campaigns, criteria, spec, asOf)
	total := len(rows)
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}

	if machineMode {
		return WriteJSONSuccess(w, CampaignsOutput{
			Criteria: criteria,
			Sort:     spec,
			AsOf:     asOf.Format(campaign.DateLayout),
			Total:    total,
			Rows:     rows,
			Summary:  campaign.Summarize(rows),
		})
	}

	printHeader(w, wf)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No campaigns match the current filters.")
		return nil
	}

	cells := dashboard.CampaignTableRows(rows)
	fmt.Fprintln(w, ui.RenderSimpleTable(dashboard.CampaignColumns(cells), cells))

	if !quiet {
		sum := campaign.Summarize(rows)
		shown := english.Plural(total, "campaign", "campaigns")
		if len(rows) < total {
			shown = fmt.Sprintf("%d of %s", len(rows), shown)
		}
		fmt.Fprintf(w, "%s · %s clicks · %s CTR · %s revenue (as of %s)\n",
			shown,
			ui.FormatCount(float64(sum.Clicks)),
			ui.FormatPercent(sum.CTR()),
			ui.FormatCurrency(sum.Revenue),
			asOf.Format(campaign.DateLayout))
	}
	return nil
}
