package campaign

import (
	"sort"
	"strings"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortSpec orders the displayed rows by one field. A nil *SortSpec means no
// enforced order.
type SortSpec struct {
	Key       string    `yaml:"key" json:"key" mapstructure:"key"`
	Direction Direction `yaml:"direction" json:"direction" mapstructure:"direction"`
}

// NextSort implements column-header clicking: the same key flips direction,
// a different key starts ascending.
func NextSort(current *SortSpec, key string) *SortSpec {
	if current != nil && current.Key == key {
		return &SortSpec{Key: key, Direction: current.Direction.Flip()}
	}
	return &SortSpec{Key: key, Direction: Asc}
}

// Sort returns a stably sorted copy of rows. Numeric fields compare
// arithmetically, everything else as lower-cased text. Desc negates the
// comparator rather than reversing the result, so equal keys keep their
// input order in both directions. A nil spec or unknown key returns rows
// in input order.
func Sort(rows []Row, spec *SortSpec) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	if spec == nil || !IsField(spec.Key) {
		return out
	}

	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sign*compareField(out[i], out[j], spec.Key) < 0
	})
	return out
}

// compareField returns -1, 0, or 1 comparing a and b on key.
func compareField(a, b Row, key string) int {
	va, _ := a.field(key)
	vb, _ := b.field(key)

	if va.numeric && vb.numeric {
		switch {
		case va.num < vb.num:
			return -1
		case va.num > vb.num:
			return 1
		}
		return 0
	}

	return strings.Compare(strings.ToLower(va.text), strings.ToLower(vb.text))
}
