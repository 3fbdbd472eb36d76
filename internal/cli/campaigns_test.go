package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCampaigns = `asOf: "2025-02-01"
campaigns:
  - id: "a"
    campaign: Winter Push
    clicks: 100
    impressions: 1000
    revenue: 500
    status: active
    date: "2025-01-30"
    source: direct
  - id: "b"
    campaign: Loyalty Drive
    clicks: 300
    impressions: 2000
    revenue: 2000
    status: active
    date: "2025-01-28"
    source: organic
    highValue: true
    repeatCustomer: true
  - id: "c"
    campaign: Holiday Recap
    clicks: 50
    impressions: 400
    revenue: 50
    status: completed
    date: "2024-12-01"
    source: direct
`

// useCampaignsConfig writes the test dataset next to a config that uses it.
func useCampaignsConfig(t *testing.T, extra string) {
	t.Helper()
	dataset := filepath.Join(t.TempDir(), "campaigns.yaml")
	require.NoError(t, os.WriteFile(dataset, []byte(testCampaigns), 0644))
	useTestConfig(t, "version: 1\ndataset: "+dataset+"\n"+extra)
}

func runCampaignsJSON(t *testing.T, opts CampaignsOptions) CampaignsOutput {
	t.Helper()
	machineMode = true

	var buf bytes.Buffer
	require.NoError(t, campaignsCommand(&buf, opts))

	var env struct {
		Success bool            `json:"success"`
		Data    CampaignsOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	require.True(t, env.Success)
	return env.Data
}

func rowIDs(rows []campaign.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}

func TestCampaigns_DefaultFilters(t *testing.T) {
	useCampaignsConfig(t, "")

	out := runCampaignsJSON(t, CampaignsOptions{})
	assert.Equal(t, []string{"a", "b"}, rowIDs(out.Rows))
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "2025-02-01", out.AsOf)
	assert.Nil(t, out.Sort)
	assert.Equal(t, 400, out.Summary.Clicks)
	assert.Equal(t, 2500.0, out.Summary.Revenue)
}

func TestCampaigns_FlagsPatchSavedFilters(t *testing.T) {
	useCampaignsConfig(t, "filters:\n  timePeriod: 90d\n  trafficSource: direct\n")

	out := runCampaignsJSON(t, CampaignsOptions{})
	assert.Equal(t, []string{"a", "c"}, rowIDs(out.Rows))

	out = runCampaignsJSON(t, CampaignsOptions{Patch: campaign.Patch{TrafficSource: ptr(campaign.All)}})
	assert.Equal(t, []string{"a", "b", "c"}, rowIDs(out.Rows))
	assert.Equal(t, campaign.Period90Days, out.Criteria.TimePeriod)

	out = runCampaignsJSON(t, CampaignsOptions{Patch: campaign.Patch{
		TrafficSource: ptr(campaign.All),
		RevenueRange:  ptr("1000+"),
	}})
	assert.Equal(t, []string{"b"}, rowIDs(out.Rows))
}

func TestCampaigns_SortAndLimit(t *testing.T) {
	useCampaignsConfig(t, "")

	out := runCampaignsJSON(t, CampaignsOptions{
		Patch: campaign.Patch{TimePeriod: ptr(campaign.Period1Year)},
		Sort:  campaign.FieldRevenue,
		Desc:  true,
		Limit: 2,
	})
	assert.Equal(t, []string{"b", "a"}, rowIDs(out.Rows))
	assert.Equal(t, 3, out.Total)
	require.NotNil(t, out.Sort)
	assert.Equal(t, campaign.Desc, out.Sort.Direction)
}

func TestCampaigns_AsOf(t *testing.T) {
	useCampaignsConfig(t, "")

	out := runCampaignsJSON(t, CampaignsOptions{
		Patch: campaign.Patch{TimePeriod: ptr(campaign.Period30Days)},
		AsOf:  "2025-03-01",
	})
	assert.Equal(t, []string{"a"}, rowIDs(out.Rows))
	assert.Equal(t, "2025-03-01", out.AsOf)
}

func TestCampaigns_InvalidInput(t *testing.T) {
	useCampaignsConfig(t, "")

	tests := []struct {
		name string
		opts CampaignsOptions
	}{
		{name: "revenue range", opts: CampaignsOptions{Patch: campaign.Patch{RevenueRange: ptr("lots")}}},
		{name: "time period", opts: CampaignsOptions{Patch: campaign.Patch{TimePeriod: ptr(campaign.TimePeriod("2w"))}}},
		{name: "sort column", opts: CampaignsOptions{Sort: "budget"}},
		{name: "desc without sort", opts: CampaignsOptions{Desc: true}},
		{name: "as-of date", opts: CampaignsOptions{AsOf: "last week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := campaignsCommand(&bytes.Buffer{}, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrFilter))
		})
	}
}

func TestCampaigns_MissingDataset(t *testing.T) {
	useCampaignsConfig(t, "")

	err := campaignsCommand(&bytes.Buffer{}, CampaignsOptions{Dataset: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read campaign dataset")
}

func TestCampaigns_TableOutput(t *testing.T) {
	useCampaignsConfig(t, "")

	var buf bytes.Buffer
	require.NoError(t, campaignsCommand(&buf, CampaignsOptions{Limit: 1}))

	out := buf.String()
	assert.Contains(t, out, "Winter Push")
	assert.NotContains(t, out, "Loyalty Drive")
	assert.Contains(t, out, "1 of 2 campaigns")
	assert.Contains(t, out, "as of 2025-02-01")
}

func TestCampaigns_NoMatches(t *testing.T) {
	useCampaignsConfig(t, "")

	var buf bytes.Buffer
	require.NoError(t, campaignsCommand(&buf, CampaignsOptions{Patch: campaign.Patch{Search: ptr("nothing like this")}}))
	assert.Contains(t, buf.String(), "No campaigns match the current filters.")
}

func TestResolveSort(t *testing.T) {
	saved := &campaign.SortSpec{Key: campaign.FieldClicks, Direction: campaign.Asc}

	tests := []struct {
		name    string
		saved   *campaign.SortSpec
		key     string
		desc    bool
		want    *campaign.SortSpec
		wantErr bool
	}{
		{name: "nothing saved or given", want: nil},
		{name: "keeps saved", saved: saved, want: saved},
		{name: "desc flips saved", saved: saved, desc: true, want: &campaign.SortSpec{Key: campaign.FieldClicks, Direction: campaign.Desc}},
		{name: "flag replaces saved", saved: saved, key: campaign.FieldRevenue, want: &campaign.SortSpec{Key: campaign.FieldRevenue, Direction: campaign.Asc}},
		{name: "flag with desc", key: campaign.FieldCTR, desc: true, want: &campaign.SortSpec{Key: campaign.FieldCTR, Direction: campaign.Desc}},
		{name: "unknown column", key: "budget", wantErr: true},
		{name: "desc alone", desc: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSort(tt.saved, tt.key, tt.desc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// The saved spec is never modified.
	assert.Equal(t, campaign.Asc, saved.Direction)
}
