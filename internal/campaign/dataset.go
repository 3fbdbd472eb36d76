package campaign

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rileyhilliard/insights/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleData []byte

// Dataset is a campaign table export.
type Dataset struct {
	// AsOf is the date the export was taken (YYYY-MM-DD). Time-period filters
	// are measured from it; when empty they are measured from the current time.
	AsOf      string `yaml:"asOf" json:"asOf"`
	Campaigns []Row  `yaml:"campaigns" json:"campaigns"`
}

// Reference returns the instant time-period filters are measured from.
func (d Dataset) Reference(now time.Time) time.Time {
	if strings.TrimSpace(d.AsOf) == "" {
		return now
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(d.AsOf), now.Location())
	if err != nil {
		return now
	}
	return t
}

// ParseDataset decodes a YAML dataset.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFilter,
			"Invalid campaign dataset",
			"Check the YAML syntax of the dataset file")
	}
	if ds.AsOf != "" {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(ds.AsOf)); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrFilter,
				fmt.Sprintf("Invalid dataset asOf date '%s'", ds.AsOf),
				"Use the YYYY-MM-DD format")
		}
	}
	return &ds, nil
}

// LoadDataset reads a dataset file, or the built-in sample when path is empty.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return SampleDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFilter,
			"Failed to read campaign dataset: "+path,
			"Check the 'dataset' path in .insights.yaml")
	}
	return ParseDataset(data)
}

// SampleDataset returns the built-in sample campaigns.
func SampleDataset() (*Dataset, error) {
	return ParseDataset(sampleData)
}
