package setpoint

import (
	"testing"

	"ratewatch/internal/domain"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func testModel(t *testing.T, entries ...*domain.CurrencyEntry) *Model {
	t.Helper()
	m, err := NewModel(entries)
	require.NoError(t, err)
	return m
}

func usdEntry(cond *domain.Condition) *domain.CurrencyEntry {
	conds := map[domain.RateType]*domain.Condition{}
	if cond != nil {
		conds[domain.SpotBuying] = cond
	}
	return &domain.CurrencyEntry{Name: "US Dollar", Code: "USD", Conditions: conds}
}

func TestApplier_SetThenAdjustMerges(t *testing.T) {
	model := testModel(t, usdEntry(nil))
	applier := NewApplier(discardLogger())

	changes, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpSet, Code: "USD", RateType: domain.SpotBuying, Max: f(100)},
		{Op: domain.OpAdjust, Code: "USD", RateType: domain.SpotBuying, Min: f(10)},
	})

	require.True(t, changed)
	require.Len(t, changes, 2)

	entry, ok := model.ByCode("USD")
	require.True(t, ok)
	cond := entry.Conditions[domain.SpotBuying]
	require.NotNil(t, cond)
	require.Equal(t, 10.0, *cond.Min)
	require.Equal(t, 100.0, *cond.Max)
}

func TestApplier_SetReplacesWholeCondition(t *testing.T) {
	model := testModel(t, usdEntry(&domain.Condition{Min: f(10), Max: f(100)}))
	applier := NewApplier(discardLogger())

	_, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpSet, Code: "USD", RateType: domain.SpotBuying, Max: f(200)},
	})

	require.True(t, changed)
	entry, _ := model.ByCode("USD")
	cond := entry.Conditions[domain.SpotBuying]
	require.Nil(t, cond.Min, "replacement omitted min, it must be gone")
	require.Equal(t, 200.0, *cond.Max)
}

func TestApplier_RemoveFieldLeavesOther(t *testing.T) {
	model := testModel(t, usdEntry(&domain.Condition{Min: f(10), Max: f(100)}))
	applier := NewApplier(discardLogger())

	_, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpRemove, Code: "USD", RateType: domain.SpotBuying, Field: domain.FieldMin},
	})

	require.True(t, changed)
	entry, _ := model.ByCode("USD")
	cond := entry.Conditions[domain.SpotBuying]
	require.NotNil(t, cond)
	require.Nil(t, cond.Min)
	require.Equal(t, 100.0, *cond.Max)
}

func TestApplier_RemoveLastFieldPrunesCondition(t *testing.T) {
	model := testModel(t, usdEntry(&domain.Condition{Max: f(100)}))
	applier := NewApplier(discardLogger())

	_, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpRemove, Code: "USD", RateType: domain.SpotBuying, Field: domain.FieldMax},
	})

	require.True(t, changed)
	entry, _ := model.ByCode("USD")
	_, exists := entry.Conditions[domain.SpotBuying]
	require.False(t, exists, "empty condition must be pruned, not kept as residue")
}

func TestApplier_AdjustCreatesConditionLazily(t *testing.T) {
	model := testModel(t, usdEntry(nil))
	applier := NewApplier(discardLogger())

	_, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpAdjust, Code: "USD", RateType: domain.CashSelling, Min: f(5)},
	})

	require.True(t, changed)
	entry, _ := model.ByCode("USD")
	cond := entry.Conditions[domain.CashSelling]
	require.NotNil(t, cond)
	require.Equal(t, 5.0, *cond.Min)
}

func TestApplier_UnknownCodeSkipped(t *testing.T) {
	model := testModel(t, usdEntry(&domain.Condition{Max: f(100)}))
	applier := NewApplier(discardLogger())

	changes, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpAdjust, Code: "ZZZ", RateType: domain.SpotBuying, Min: f(1)},
	})

	require.False(t, changed)
	require.Empty(t, changes)

	// one skip plus one applied still counts as changed
	changes, changed = applier.Apply(model, []domain.Mutation{
		{Op: domain.OpAdjust, Code: "ZZZ", RateType: domain.SpotBuying, Min: f(1)},
		{Op: domain.OpAdjust, Code: "USD", RateType: domain.SpotBuying, Min: f(1)},
	})
	require.True(t, changed)
	require.Len(t, changes, 1)
}

func TestApplier_EmptyListIsNoop(t *testing.T) {
	model := testModel(t, usdEntry(nil))
	applier := NewApplier(discardLogger())

	changes, changed := applier.Apply(model, nil)

	require.False(t, changed)
	require.Empty(t, changes)
}

func TestApplier_LaterMutationOverridesEarlier(t *testing.T) {
	model := testModel(t, usdEntry(nil))
	applier := NewApplier(discardLogger())

	_, changed := applier.Apply(model, []domain.Mutation{
		{Op: domain.OpAdjust, Code: "USD", RateType: domain.SpotBuying, Max: f(700)},
		{Op: domain.OpAdjust, Code: "USD", RateType: domain.SpotBuying, Max: f(740)},
	})

	require.True(t, changed)
	entry, _ := model.ByCode("USD")
	require.Equal(t, 740.0, *entry.Conditions[domain.SpotBuying].Max)
}

func TestAppliedChange_Strings(t *testing.T) {
	adjust := domain.AppliedChange{
		Op: domain.OpAdjust, Code: "USD", RateType: domain.SpotBuying,
		Result: &domain.Condition{Min: f(10), Max: f(740.5)},
	}
	require.Equal(t, "Adjust USD spot_buying_rate: min: 10, max: 740.5", adjust.String())

	remove := domain.AppliedChange{
		Op: domain.OpRemove, Code: "USD", RateType: domain.SpotBuying, Field: domain.FieldMin,
	}
	require.Equal(t, "Remove USD spot_buying_rate min", remove.String())
}
