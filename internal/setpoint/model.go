// Package setpoint holds the rate condition model and the command-driven
// adjustment engine that mutates it.
package setpoint

import (
	"strings"

	"ratewatch/internal/domain"
)

// Model is the in-memory view over the configured currency entries. The same
// owned collection is indexed twice: by code for mutation and by name for
// evaluation. Entries are shared with the loaded snapshot, so mutations made
// through the model are what the store later persists.
//
// Mutations are visible to subsequent lookups immediately; there is no
// deferred-commit semantics inside a cycle.
type Model struct {
	entries []*domain.CurrencyEntry
	byCode  map[string]*domain.CurrencyEntry
	byName  map[string]*domain.CurrencyEntry
}

// NewModel indexes entries by code and by name. Duplicate codes or names
// violate the configuration contract and are rejected.
func NewModel(entries []*domain.CurrencyEntry) (*Model, error) {
	m := &Model{
		entries: entries,
		byCode:  make(map[string]*domain.CurrencyEntry, len(entries)),
		byName:  make(map[string]*domain.CurrencyEntry, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToUpper(e.Code)
		if _, ok := m.byCode[code]; ok {
			return nil, domain.ErrDuplicateEntry
		}
		if _, ok := m.byName[e.Name]; ok {
			return nil, domain.ErrDuplicateEntry
		}
		m.byCode[code] = e
		m.byName[e.Name] = e
	}
	return m, nil
}

// ByCode resolves a currency entry by its canonical (upper-case) code.
func (m *Model) ByCode(code string) (*domain.CurrencyEntry, bool) {
	e, ok := m.byCode[strings.ToUpper(code)]
	return e, ok
}

// ByName resolves a currency entry by the published currency name.
func (m *Model) ByName(name string) (*domain.CurrencyEntry, bool) {
	e, ok := m.byName[name]
	return e, ok
}

// Entries returns the owned collection in configuration order.
func (m *Model) Entries() []*domain.CurrencyEntry {
	return m.entries
}

// SnapshotEntries returns deep copies of the entries, safe to hand to
// concurrent readers such as the status API.
func (m *Model) SnapshotEntries() []*domain.CurrencyEntry {
	out := make([]*domain.CurrencyEntry, 0, len(m.entries))
	for _, e := range m.entries {
		conds := make(map[domain.RateType]*domain.Condition, len(e.Conditions))
		for rt, c := range e.Conditions {
			conds[rt] = c.Clone()
		}
		out = append(out, &domain.CurrencyEntry{Name: e.Name, Code: e.Code, Conditions: conds})
	}
	return out
}
