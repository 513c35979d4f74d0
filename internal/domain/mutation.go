package domain

import (
	"strconv"
	"strings"
)

// MutationOp is the kind of a reply-command mutation.
type MutationOp int

const (
	OpAdjust MutationOp = iota
	OpSet
	OpRemove
)

func (op MutationOp) String() string {
	switch op {
	case OpAdjust:
		return "Adjust"
	case OpSet:
		return "Set"
	case OpRemove:
		return "Remove"
	}
	return "Unknown"
}

// BoundField names one side of a Condition.
type BoundField string

const (
	FieldMin BoundField = "min"
	FieldMax BoundField = "max"
)

// ParseBoundField normalizes a wire token to min or max.
func ParseBoundField(token string) (BoundField, bool) {
	switch BoundField(strings.ToLower(token)) {
	case FieldMin:
		return FieldMin, true
	case FieldMax:
		return FieldMax, true
	}
	return "", false
}

// Mutation is one structured instruction parsed from a reply command.
// Min/Max carry the Adjust patch or the Set replacement; Field names the
// Remove target. Mutations are transient: parsed from one message, applied
// once, never persisted.
type Mutation struct {
	Op       MutationOp
	Code     string
	RateType RateType

	Min *float64
	Max *float64

	Field BoundField
}

// AppliedChange records the effect of one applied Mutation.
// Result is the Condition after application, nil when it was pruned.
type AppliedChange struct {
	Op       MutationOp
	Code     string
	RateType RateType
	Field    BoundField
	Result   *Condition
}

// String renders the audit line for this change, without the leading dash.
func (a AppliedChange) String() string {
	if a.Op == OpRemove {
		return a.Op.String() + " " + a.Code + " " + string(a.RateType) + " " + string(a.Field)
	}
	var fields []string
	if a.Result != nil && a.Result.Min != nil {
		fields = append(fields, "min: "+FormatRate(*a.Result.Min))
	}
	if a.Result != nil && a.Result.Max != nil {
		fields = append(fields, "max: "+FormatRate(*a.Result.Max))
	}
	return a.Op.String() + " " + a.Code + " " + string(a.RateType) + ": " + strings.Join(fields, ", ")
}

// FormatRate renders a rate value the way it was written, without trailing
// zero padding.
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
