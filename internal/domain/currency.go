package domain

import "strings"

// RateType identifies one of the four published rate columns.
type RateType string

const (
	SpotBuying  RateType = "spot_buying_rate"
	CashBuying  RateType = "cash_buying_rate"
	SpotSelling RateType = "spot_selling_rate"
	CashSelling RateType = "cash_selling_rate"
)

// RateTypes returns the rate types in published column order. Iteration over
// conditions must use this order so that evaluation and report output stay
// deterministic.
func RateTypes() []RateType {
	return []RateType{SpotBuying, CashBuying, SpotSelling, CashSelling}
}

// ParseRateType normalizes a wire token to its canonical rate type.
// Unknown tokens are rejected, not passed through.
func ParseRateType(token string) (RateType, bool) {
	switch RateType(strings.ToLower(token)) {
	case SpotBuying:
		return SpotBuying, true
	case CashBuying:
		return CashBuying, true
	case SpotSelling:
		return SpotSelling, true
	case CashSelling:
		return CashSelling, true
	}
	return "", false
}

// Condition holds the acceptable-range boundaries for one rate type.
// A Condition with both fields absent is equivalent to "no condition" and
// must be pruned from its conditions map, never stored as an empty record.
// min <= max is not enforced anywhere; the evaluator checks both bounds
// independently so a crossed pair still fires the bound a value violates.
type Condition struct {
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

func (c *Condition) Empty() bool {
	return c == nil || (c.Min == nil && c.Max == nil)
}

// Clone returns a copy that shares no pointers with the receiver.
func (c *Condition) Clone() *Condition {
	if c == nil {
		return nil
	}
	out := &Condition{}
	if c.Min != nil {
		v := *c.Min
		out.Min = &v
	}
	if c.Max != nil {
		v := *c.Max
		out.Max = &v
	}
	return out
}

// CurrencyEntry is one monitored currency. Name joins against fetched rate
// observations, Code joins against reply commands; both are unique across
// the configured set.
type CurrencyEntry struct {
	Name       string                  `yaml:"name" json:"name"`
	Code       string                  `yaml:"code" json:"code"`
	Conditions map[RateType]*Condition `yaml:"conditions" json:"conditions"`
}

// Observation is one currency's row from a fetched rate table. Rates holds
// nil for columns that were blank or unparseable.
type Observation struct {
	Rates map[RateType]*float64 `json:"rates"`
	Time  string                `json:"time"`
}
