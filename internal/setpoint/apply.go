package setpoint

import (
	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Applier applies parsed mutations to the model. Failure semantics are
// per-mutation: an unresolved currency code is logged and skipped, it never
// aborts the remaining mutations.
type Applier struct {
	log logrus.FieldLogger
}

func NewApplier(log logrus.FieldLogger) *Applier {
	return &Applier{log: log}
}

// Apply runs the mutations in order and returns the applied-change log plus
// a changed flag. The flag is false only when the list was empty or every
// mutation was skipped; it gates persistence, confirmation and audit commit,
// none of which may happen on a no-op cycle.
func (a *Applier) Apply(model *Model, muts []domain.Mutation) ([]domain.AppliedChange, bool) {
	var applied []domain.AppliedChange

	for _, mut := range muts {
		entry, ok := model.ByCode(mut.Code)
		if !ok {
			a.log.Warnf("Skipping %s for unknown currency code %s", mut.Op, mut.Code)
			continue
		}
		if entry.Conditions == nil {
			entry.Conditions = make(map[domain.RateType]*domain.Condition)
		}

		cond := entry.Conditions[mut.RateType]
		if cond == nil {
			cond = &domain.Condition{}
			entry.Conditions[mut.RateType] = cond
		}

		switch mut.Op {
		case domain.OpAdjust:
			// Patch fields overwrite, absent fields stay untouched.
			if mut.Min != nil {
				v := *mut.Min
				cond.Min = &v
			}
			if mut.Max != nil {
				v := *mut.Max
				cond.Max = &v
			}
		case domain.OpSet:
			// Wholesale replacement: a bound absent from the replacement
			// disappears even if previously set.
			cond.Min = nil
			cond.Max = nil
			if mut.Min != nil {
				v := *mut.Min
				cond.Min = &v
			}
			if mut.Max != nil {
				v := *mut.Max
				cond.Max = &v
			}
		case domain.OpRemove:
			if mut.Field == domain.FieldMin {
				cond.Min = nil
			} else {
				cond.Max = nil
			}
		}

		// An all-absent Condition means "no condition" and must leave no
		// residue in the map, or the persisted form stops round-tripping.
		var result *domain.Condition
		if cond.Empty() {
			delete(entry.Conditions, mut.RateType)
		} else {
			result = cond.Clone()
		}

		applied = append(applied, domain.AppliedChange{
			Op:       mut.Op,
			Code:     mut.Code,
			RateType: mut.RateType,
			Field:    mut.Field,
			Result:   result,
		})
	}

	return applied, len(applied) > 0
}
