package domain

// BoundaryKind tells which side of a Condition an observation crossed.
type BoundaryKind string

const (
	BelowMin BoundaryKind = "below_min"
	AboveMax BoundaryKind = "above_max"
)

// Violation is one threshold breach found during an evaluation cycle.
// Produced fresh each cycle and consumed by the notification path only.
type Violation struct {
	CurrencyName string
	RateType     RateType
	Observed     float64
	Kind         BoundaryKind
	Boundary     float64
	ObservedAt   string
}

// String renders the alert line for this violation.
func (v Violation) String() string {
	direction := "below minimum"
	if v.Kind == AboveMax {
		direction = "above maximum"
	}
	return v.CurrencyName + " " + string(v.RateType) + ": " +
		FormatRate(v.Observed) + " " + direction + " " + FormatRate(v.Boundary)
}
