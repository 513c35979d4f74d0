package setpoint

import (
	"strconv"
	"strings"

	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Parser extracts structured mutations from the plain-text reply content of
// one mail message. The grammar is deliberately permissive: the input is a
// human free-text reply, so anything that does not match a command is
// skipped, never an error for the whole message.
//
// Commands are scanned grouped by keyword kind: all ADJUST matches first,
// then SET, then REMOVE, each kind in appearance order. The applier relies
// on this ordering being stable.
type Parser struct {
	log logrus.FieldLogger
}

func NewParser(log logrus.FieldLogger) *Parser {
	return &Parser{log: log}
}

// Parse returns the mutations found in text, in application order.
func (p *Parser) Parse(text string) []domain.Mutation {
	tokens := strings.Fields(text)

	var muts []domain.Mutation
	muts = append(muts, p.scanKind(tokens, "ADJUST", domain.OpAdjust)...)
	muts = append(muts, p.scanKind(tokens, "SET", domain.OpSet)...)
	muts = append(muts, p.scanKind(tokens, "REMOVE", domain.OpRemove)...)
	return muts
}

func (p *Parser) scanKind(tokens []string, keyword string, op domain.MutationOp) []domain.Mutation {
	var out []domain.Mutation
	for i := 0; i < len(tokens); i++ {
		if !strings.EqualFold(tokens[i], keyword) {
			continue
		}
		mut, next, ok := p.parseCommand(tokens, i, op)
		if !ok {
			continue
		}
		out = append(out, mut)
		i = next - 1
	}
	return out
}

// parseCommand parses one command starting at the keyword index. It returns
// the index past the consumed tokens so the kind scan does not re-enter the
// command's own arguments.
func (p *Parser) parseCommand(tokens []string, i int, op domain.MutationOp) (domain.Mutation, int, bool) {
	if i+2 >= len(tokens) {
		return domain.Mutation{}, 0, false
	}

	code := tokens[i+1]
	if !isCurrencyCode(code) {
		p.log.Warnf("Skipping %s command: %q is not a currency code", op, code)
		return domain.Mutation{}, 0, false
	}

	rt, ok := domain.ParseRateType(tokens[i+2])
	if !ok {
		p.log.Warnf("Skipping %s command for %s: unknown rate type %q", op, code, tokens[i+2])
		return domain.Mutation{}, 0, false
	}

	mut := domain.Mutation{Op: op, Code: strings.ToUpper(code), RateType: rt}
	j := i + 3

	if op == domain.OpRemove {
		if j >= len(tokens) {
			return domain.Mutation{}, 0, false
		}
		field, ok := domain.ParseBoundField(tokens[j])
		if !ok {
			p.log.Warnf("Skipping Remove command for %s: %q is neither min nor max", mut.Code, tokens[j])
			return domain.Mutation{}, 0, false
		}
		mut.Field = field
		return mut, j + 1, true
	}

	for j < len(tokens) {
		field, ok := domain.ParseBoundField(tokens[j])
		if !ok {
			break
		}
		if j+1 >= len(tokens) {
			p.log.Warnf("Skipping %s command for %s: %s has no value", op, mut.Code, field)
			return domain.Mutation{}, 0, false
		}
		val, ok := parseRateNumber(tokens[j+1])
		if !ok {
			p.log.Warnf("Skipping %s command for %s: malformed number %q", op, mut.Code, tokens[j+1])
			return domain.Mutation{}, 0, false
		}
		if field == domain.FieldMin {
			mut.Min = &val
		} else {
			mut.Max = &val
		}
		j += 2
	}

	// No bound recognized after the keyword: dropped, not an error.
	if mut.Min == nil && mut.Max == nil {
		return domain.Mutation{}, 0, false
	}
	return mut, j, true
}

func isCurrencyCode(token string) bool {
	if len(token) < 3 || len(token) > 4 {
		return false
	}
	for _, r := range token {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// parseRateNumber accepts non-negative decimals only: digits with at most
// one decimal point.
func parseRateNumber(token string) (float64, bool) {
	dots := 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	if token == "" || token == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
