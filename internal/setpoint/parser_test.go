package setpoint

import (
	"io"
	"testing"

	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestParser_Adjust_SingleBound(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("ADJUST USD spot_buying_rate max 740")

	require.Len(t, muts, 1)
	require.Equal(t, domain.OpAdjust, muts[0].Op)
	require.Equal(t, "USD", muts[0].Code)
	require.Equal(t, domain.SpotBuying, muts[0].RateType)
	require.Nil(t, muts[0].Min)
	require.NotNil(t, muts[0].Max)
	require.Equal(t, 740.0, *muts[0].Max)
}

func TestParser_Set_BothBounds(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("SET JPY spot_selling_rate min 4.80 max 5.20")

	require.Len(t, muts, 1)
	require.Equal(t, domain.OpSet, muts[0].Op)
	require.Equal(t, "JPY", muts[0].Code)
	require.Equal(t, domain.SpotSelling, muts[0].RateType)
	require.NotNil(t, muts[0].Min)
	require.NotNil(t, muts[0].Max)
	require.Equal(t, 4.80, *muts[0].Min)
	require.Equal(t, 5.20, *muts[0].Max)
}

func TestParser_Remove(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("REMOVE USD spot_buying_rate min")

	require.Len(t, muts, 1)
	require.Equal(t, domain.OpRemove, muts[0].Op)
	require.Equal(t, "USD", muts[0].Code)
	require.Equal(t, domain.SpotBuying, muts[0].RateType)
	require.Equal(t, domain.FieldMin, muts[0].Field)
}

func TestParser_GarbledLineIsIgnored(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("thanks, please ADJUST USD spot_buying_rate max 740\nand also do something else")

	require.Len(t, muts, 1)
	require.Equal(t, domain.OpAdjust, muts[0].Op)
	require.Equal(t, "USD", muts[0].Code)
}

func TestParser_NormalizesCodeAndRateType(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("adjust usd SPOT_BUYING_RATE MAX 740")

	require.Len(t, muts, 1)
	require.Equal(t, "USD", muts[0].Code)
	require.Equal(t, domain.SpotBuying, muts[0].RateType)
	require.Equal(t, 740.0, *muts[0].Max)
}

func TestParser_GroupsByKindKeepsInKindOrder(t *testing.T) {
	p := NewParser(discardLogger())

	// REMOVE appears before the ADJUSTs in the message, but all ADJUSTs come
	// first in the output, then SET, then REMOVE, each in appearance order.
	muts := p.Parse(`REMOVE USD spot_buying_rate min
ADJUST JPY cash_selling_rate min 1
SET EUR spot_selling_rate max 9
ADJUST USD spot_buying_rate max 740`)

	require.Len(t, muts, 4)
	require.Equal(t, domain.OpAdjust, muts[0].Op)
	require.Equal(t, "JPY", muts[0].Code)
	require.Equal(t, domain.OpAdjust, muts[1].Op)
	require.Equal(t, "USD", muts[1].Code)
	require.Equal(t, domain.OpSet, muts[2].Op)
	require.Equal(t, "EUR", muts[2].Code)
	require.Equal(t, domain.OpRemove, muts[3].Op)
	require.Equal(t, "USD", muts[3].Code)
}

func TestParser_UnknownRateTypeRejected(t *testing.T) {
	p := NewParser(discardLogger())

	muts := p.Parse("ADJUST USD overnight_rate max 740")

	require.Empty(t, muts)
}

func TestParser_MalformedNumberSkipsMatch(t *testing.T) {
	p := NewParser(discardLogger())

	require.Empty(t, p.Parse("ADJUST USD spot_buying_rate max 7a0"))
	require.Empty(t, p.Parse("ADJUST USD spot_buying_rate max -5"))
	require.Empty(t, p.Parse("ADJUST USD spot_buying_rate max"))
}

func TestParser_NoBoundYieldsNothing(t *testing.T) {
	p := NewParser(discardLogger())

	require.Empty(t, p.Parse("ADJUST USD spot_buying_rate"))
	require.Empty(t, p.Parse("SET USD spot_buying_rate soon"))
}

func TestParser_RemoveRequiresMinOrMax(t *testing.T) {
	p := NewParser(discardLogger())

	require.Empty(t, p.Parse("REMOVE USD spot_buying_rate everything"))
	require.Empty(t, p.Parse("REMOVE USD spot_buying_rate"))
}

func TestParser_BadCodeRejected(t *testing.T) {
	p := NewParser(discardLogger())

	require.Empty(t, p.Parse("ADJUST US spot_buying_rate max 740"))
	require.Empty(t, p.Parse("ADJUST DOLLARS spot_buying_rate max 740"))
	require.Empty(t, p.Parse("ADJUST U5D spot_buying_rate max 740"))
}

func TestParser_EmptyMessage(t *testing.T) {
	p := NewParser(discardLogger())

	require.Empty(t, p.Parse(""))
	require.Empty(t, p.Parse("   \n\t  "))
}
