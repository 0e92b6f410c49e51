package nec

import (
	"fmt"
	"strings"
)

// ConduitType is a raceway material/schedule.
type ConduitType string

const (
	EMT   ConduitType = "EMT"
	PVC40 ConduitType = "PVC40"
	PVC80 ConduitType = "PVC80"
	RGS   ConduitType = "RGS"
	IMC   ConduitType = "IMC"
)

// ConduitTypes lists the tabulated raceway types.
func ConduitTypes() []ConduitType {
	return []ConduitType{EMT, PVC40, PVC80, RGS, IMC}
}

// ParseConduitType accepts the table names plus a few common spellings
// ("pvc", "sch 40", "rmc").
func ParseConduitType(s string) (ConduitType, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "", "-", "", "SCHEDULE", "", "SCH", "").Replace(v)
	switch v {
	case "EMT":
		return EMT, nil
	case "PVC", "PVC40":
		return PVC40, nil
	case "PVC80":
		return PVC80, nil
	case "RGS", "RMC", "GRC":
		return RGS, nil
	case "IMC":
		return IMC, nil
	}
	return "", fmt.Errorf("unknown conduit type %q", s)
}

// ConduitSpec is one trade size of a raceway type with its total internal area
// (100% column of Chapter 9 Table 4).
type ConduitSpec struct {
	Type      ConduitType `json:"type"`
	TradeSize string      `json:"trade_size"`
	Area      float64     `json:"area_sq_in"`
}

type conduitRow struct {
	tradeSize string
	area      float64
}

var conduitRows = map[ConduitType][]conduitRow{
	EMT: {
		{"1/2", 0.304}, {"3/4", 0.533}, {"1", 0.864}, {"1-1/4", 1.496}, {"1-1/2", 2.036},
		{"2", 3.356}, {"2-1/2", 5.858}, {"3", 8.846}, {"3-1/2", 11.545}, {"4", 14.753},
	},
	PVC40: {
		{"1/2", 0.285}, {"3/4", 0.508}, {"1", 0.832}, {"1-1/4", 1.453}, {"1-1/2", 1.986},
		{"2", 3.291}, {"2-1/2", 4.695}, {"3", 7.268}, {"3-1/2", 9.737}, {"4", 12.554},
		{"5", 19.761}, {"6", 28.567},
	},
	PVC80: {
		{"1/2", 0.217}, {"3/4", 0.409}, {"1", 0.688}, {"1-1/4", 1.237}, {"1-1/2", 1.711},
		{"2", 2.874}, {"2-1/2", 4.119}, {"3", 6.442}, {"3-1/2", 8.688}, {"4", 11.258},
		{"5", 17.855}, {"6", 25.598},
	},
	RGS: {
		{"1/2", 0.314}, {"3/4", 0.549}, {"1", 0.887}, {"1-1/4", 1.526}, {"1-1/2", 2.071},
		{"2", 3.408}, {"2-1/2", 4.866}, {"3", 7.499}, {"3-1/2", 10.010}, {"4", 12.882},
		{"5", 20.212}, {"6", 29.158},
	},
	IMC: {
		{"1/2", 0.342}, {"3/4", 0.586}, {"1", 0.959}, {"1-1/4", 1.647}, {"1-1/2", 2.225},
		{"2", 3.630}, {"2-1/2", 5.135}, {"3", 7.922}, {"3-1/2", 10.584}, {"4", 13.631},
	},
}

// Conduits returns the trade sizes of a raceway type, smallest first.
func Conduits(t ConduitType) []ConduitSpec {
	rows := conduitRows[t]
	out := make([]ConduitSpec, 0, len(rows))
	for _, r := range rows {
		out = append(out, ConduitSpec{Type: t, TradeSize: r.tradeSize, Area: r.area})
	}
	return out
}

// Conduit looks up one trade size. Trade sizes may be written with a space or
// a dash between whole and fraction ("1 1/4", "1-1/4") and an optional inch mark.
func Conduit(t ConduitType, tradeSize string) (ConduitSpec, bool) {
	want := normalizeTradeSize(tradeSize)
	for _, r := range conduitRows[t] {
		if r.tradeSize == want {
			return ConduitSpec{Type: t, TradeSize: r.tradeSize, Area: r.area}, true
		}
	}
	return ConduitSpec{}, false
}

func normalizeTradeSize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, `"`)
	s = strings.TrimSuffix(strings.TrimSpace(s), "in")
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), "-")
}

// FillRule is one bracket of Chapter 9 Table 1, keyed on conductor count.
// MaxConductors of 0 means the bracket is open-ended.
type FillRule struct {
	MinConductors int     `json:"min_conductors"`
	MaxConductors int     `json:"max_conductors,omitempty"`
	Percent       float64 `json:"percent"`
	Description   string  `json:"description"`
}

// Matches reports whether count falls in the bracket.
func (r FillRule) Matches(count int) bool {
	if count < r.MinConductors {
		return false
	}
	return r.MaxConductors == 0 || count <= r.MaxConductors
}

// FillRules partition the non-negative integers. An empty raceway falls in the
// single-conductor bracket.
var FillRules = []FillRule{
	{MinConductors: 0, MaxConductors: 1, Percent: 53, Description: "1 conductor"},
	{MinConductors: 2, MaxConductors: 2, Percent: 31, Description: "2 conductors"},
	{MinConductors: 3, Percent: 40, Description: "over 2 conductors"},
}

const (
	// NippleFillPercent applies to nipples not exceeding NippleMaxLengthInches (Ch. 9 Note 4).
	NippleFillPercent     = 60.0
	NippleMaxLengthInches = 24.0
)

// FillRuleFor returns the bracket for a conductor count.
func FillRuleFor(count int, nipple bool) (FillRule, bool) {
	if count < 0 {
		return FillRule{}, false
	}
	if nipple {
		return FillRule{MinConductors: 0, Percent: NippleFillPercent, Description: "nipple not exceeding 24 in"}, true
	}
	for _, r := range FillRules {
		if r.Matches(count) {
			return r, true
		}
	}
	return FillRule{}, false
}
