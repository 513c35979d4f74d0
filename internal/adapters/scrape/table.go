package scrape

import (
	"strconv"
	"strings"

	"ratewatch/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// The published page lays its rates out as a left-aligned table:
// column 0 is the currency name, 1-4 the four rate columns in
// spot-buy/cash-buy/spot-sell/cash-sell order, 7 the publication time.
const (
	minCells = 8
	timeCell = 7
)

// TableParser extracts observations from the rate page markup.
type TableParser struct{}

func NewTableParser() TableParser { return TableParser{} }

// ParseRates returns one observation per table row. Rows with too few cells
// are skipped; blank or unparseable rate cells become nil fields rather than
// failing the row.
func (TableParser) ParseRates(markup string) (map[string]domain.Observation, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	table := doc.Find(`table[align="left"]`).First()
	if table.Length() == 0 {
		return nil, domain.ErrNoRateTable
	}

	observations := make(map[string]domain.Observation)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" {
			return
		}
		observations[name] = domain.Observation{
			Rates: map[domain.RateType]*float64{
				domain.SpotBuying:  parseRateCell(cells.Eq(1).Text()),
				domain.CashBuying:  parseRateCell(cells.Eq(2).Text()),
				domain.SpotSelling: parseRateCell(cells.Eq(3).Text()),
				domain.CashSelling: parseRateCell(cells.Eq(4).Text()),
			},
			Time: strings.TrimSpace(cells.Eq(timeCell).Text()),
		}
	})

	return observations, nil
}

func parseRateCell(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}
