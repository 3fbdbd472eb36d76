// Package campaign implements the filter/sort engine for the campaign
// performance table. View is a pure function of (rows, criteria, sort, asOf):
// identical arguments always produce identical output.
package campaign

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of Row.Date.
const DateLayout = "2006-01-02"

// Row is one campaign analytics entry. Rows are treated as immutable once loaded.
type Row struct {
	ID             string  `yaml:"id" json:"id"`
	Campaign       string  `yaml:"campaign" json:"campaign"`
	Clicks         int     `yaml:"clicks" json:"clicks"`
	Impressions    int     `yaml:"impressions" json:"impressions"`
	CTR            float64 `yaml:"ctr" json:"ctr"`
	Conversions    int     `yaml:"conversions" json:"conversions"`
	Revenue        float64 `yaml:"revenue" json:"revenue"`
	Status         string  `yaml:"status" json:"status"`
	Date           string  `yaml:"date" json:"date"`
	Source         string  `yaml:"source" json:"source"`
	HighValue      bool    `yaml:"highValue" json:"highValue"`
	RepeatCustomer bool    `yaml:"repeatCustomer" json:"repeatCustomer"`
}

// Sortable field keys.
const (
	FieldID             = "id"
	FieldCampaign       = "campaign"
	FieldClicks         = "clicks"
	FieldImpressions    = "impressions"
	FieldCTR            = "ctr"
	FieldConversions    = "conversions"
	FieldRevenue        = "revenue"
	FieldStatus         = "status"
	FieldDate           = "date"
	FieldSource         = "source"
	FieldHighValue      = "highValue"
	FieldRepeatCustomer = "repeatCustomer"
)

// Fields lists every sortable key in table column order.
var Fields = []string{
	FieldCampaign,
	FieldClicks,
	FieldImpressions,
	FieldCTR,
	FieldConversions,
	FieldRevenue,
	FieldStatus,
	FieldDate,
	FieldSource,
	FieldID,
	FieldHighValue,
	FieldRepeatCustomer,
}

// value is a field read from a row. Numeric fields set num; all others set text.
type value struct {
	numeric bool
	num     float64
	text    string
}

// field returns the value of key on r. ok is false for unknown keys.
func (r Row) field(key string) (v value, ok bool) {
	switch key {
	case FieldClicks:
		return value{numeric: true, num: float64(r.Clicks)}, true
	case FieldImpressions:
		return value{numeric: true, num: float64(r.Impressions)}, true
	case FieldCTR:
		return value{numeric: true, num: r.CTR}, true
	case FieldConversions:
		return value{numeric: true, num: float64(r.Conversions)}, true
	case FieldRevenue:
		return value{numeric: true, num: r.Revenue}, true
	case FieldID:
		return value{text: r.ID}, true
	case FieldCampaign:
		return value{text: r.Campaign}, true
	case FieldStatus:
		return value{text: r.Status}, true
	case FieldDate:
		return value{text: r.Date}, true
	case FieldSource:
		return value{text: r.Source}, true
	case FieldHighValue:
		return value{text: strconv.FormatBool(r.HighValue)}, true
	case FieldRepeatCustomer:
		return value{text: strconv.FormatBool(r.RepeatCustomer)}, true
	}
	return value{}, false
}

// IsField reports whether key names a sortable field.
func IsField(key string) bool {
	_, ok := Row{}.field(key)
	return ok
}

// AgeDays returns whole days elapsed between the row date and asOf.
// ok is false when the date cannot be parsed.
func (r Row) AgeDays(asOf time.Time) (days int, ok bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(r.Date), asOf.Location())
	if err != nil {
		return 0, false
	}
	return int(asOf.Sub(d).Hours() / 24), true
}
