package domain

import "errors"

var (
	ErrNoRateTable    = errors.New("rate table not found in page")
	ErrDuplicateEntry = errors.New("duplicate currency name or code")
)
