package scrape

import (
	"testing"

	"ratewatch/internal/domain"

	"github.com/stretchr/testify/require"
)

const samplePage = `
<html><body>
<table align="left">
  <tr><th>Currency</th><th>Spot buy</th><th>Cash buy</th><th>Spot sell</th><th>Cash sell</th><th>c5</th><th>c6</th><th>Time</th></tr>
  <tr>
    <td> US Dollar </td><td>731.5</td><td>725.54</td><td>734.6</td><td>734.6</td>
    <td>x</td><td>x</td><td> 10:30:00 </td>
  </tr>
  <tr>
    <td>Japanese Yen</td><td>4.83</td><td></td><td>4.87</td><td>n/a</td>
    <td>x</td><td>x</td><td>10:30:00</td>
  </tr>
  <tr><td>Truncated Row</td><td>1.0</td></tr>
</table>
</body></html>`

func TestTableParser_ParsesRows(t *testing.T) {
	obs, err := NewTableParser().ParseRates(samplePage)
	require.NoError(t, err)
	require.Len(t, obs, 2)

	usd := obs["US Dollar"]
	require.Equal(t, 731.5, *usd.Rates[domain.SpotBuying])
	require.Equal(t, 725.54, *usd.Rates[domain.CashBuying])
	require.Equal(t, 734.6, *usd.Rates[domain.SpotSelling])
	require.Equal(t, 734.6, *usd.Rates[domain.CashSelling])
	require.Equal(t, "10:30:00", usd.Time)
}

func TestTableParser_BlankAndGarbledCellsBecomeNil(t *testing.T) {
	obs, err := NewTableParser().ParseRates(samplePage)
	require.NoError(t, err)

	jpy := obs["Japanese Yen"]
	require.Equal(t, 4.83, *jpy.Rates[domain.SpotBuying])
	require.Nil(t, jpy.Rates[domain.CashBuying])
	require.Equal(t, 4.87, *jpy.Rates[domain.SpotSelling])
	require.Nil(t, jpy.Rates[domain.CashSelling])
}

func TestTableParser_SkipsShortRows(t *testing.T) {
	obs, err := NewTableParser().ParseRates(samplePage)
	require.NoError(t, err)
	require.NotContains(t, obs, "Truncated Row")
}

func TestTableParser_NoTable(t *testing.T) {
	_, err := NewTableParser().ParseRates("<html><body><p>maintenance</p></body></html>")
	require.ErrorIs(t, err, domain.ErrNoRateTable)
}
