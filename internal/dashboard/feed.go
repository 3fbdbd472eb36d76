package dashboard

import (
	"time"

	"github.com/rileyhilliard/insights/internal/campaign"
)

// feed is the data the refresh callback regenerates. The model holds it by
// pointer so the callback and every copy of the model see the same state.
type feed struct {
	board   *Board
	history *History

	// datasetPath is re-read on every refresh when set.
	datasetPath string
	dataset     *campaign.Dataset

	updated time.Time
	lastErr error
	now     func() time.Time
}

// refresh is the scheduler callback: regenerate metrics, record history,
// and reload the dataset from disk if it came from a file.
func (f *feed) refresh() error {
	f.board.Regenerate()
	for _, m := range f.board.Metrics() {
		f.history.Push(m.ID, m.Value)
	}
	f.updated = f.now()

	if f.datasetPath != "" {
		ds, err := campaign.LoadDataset(f.datasetPath)
		if err != nil {
			return err
		}
		f.dataset = ds
	}

	f.lastErr = nil
	return nil
}

// fail records a callback failure for the status line.
func (f *feed) fail(err error) {
	f.lastErr = err
}

// seed records the initial metric values so sparklines start with a point.
func (f *feed) seed() {
	for _, m := range f.board.Metrics() {
		f.history.Push(m.ID, m.Value)
	}
}
