package setpoint

import "ratewatch/internal/domain"

// Evaluate compares this cycle's observations against the model and returns
// the violations found, in entry order and published rate-type order.
//
// Min and max are checked independently, not as if/else branches: nothing
// validates min <= max at mutation time, so a crossed pair must still fire
// whichever bound the observed value actually violates. Entries without a
// matching observation and rate types with a nil observed value are skipped.
func Evaluate(model *Model, observations map[string]domain.Observation) []domain.Violation {
	var violations []domain.Violation

	for _, entry := range model.Entries() {
		obs, ok := observations[entry.Name]
		if !ok {
			continue
		}
		for _, rt := range domain.RateTypes() {
			cond, ok := entry.Conditions[rt]
			if !ok || cond == nil {
				continue
			}
			observed := obs.Rates[rt]
			if observed == nil {
				continue
			}
			if cond.Min != nil && *observed < *cond.Min {
				violations = append(violations, domain.Violation{
					CurrencyName: entry.Name,
					RateType:     rt,
					Observed:     *observed,
					Kind:         domain.BelowMin,
					Boundary:     *cond.Min,
					ObservedAt:   obs.Time,
				})
			}
			if cond.Max != nil && *observed > *cond.Max {
				violations = append(violations, domain.Violation{
					CurrencyName: entry.Name,
					RateType:     rt,
					Observed:     *observed,
					Kind:         domain.AboveMax,
					Boundary:     *cond.Max,
					ObservedAt:   obs.Time,
				})
			}
		}
	}

	return violations
}
