// Package timephrase parses relative time phrases like "3 months", "2d" or
// "1 month and 2 weeks ago" and resolves them against a reference instant.
package timephrase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrParse is matched by every error returned for a malformed phrase.
var ErrParse = errors.New("invalid time phrase")

// ParseError describes why a phrase could not be parsed.
type ParseError struct {
	Phrase string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time phrase %q: %s (use e.g. \"2 days\", 3h, \"1 month 2 weeks\")", e.Phrase, e.Reason)
}

// Is makes errors.Is(err, ErrParse) true for any *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Pair is a single quantity of a unit, e.g. "3 months".
type Pair struct {
	Quantity int64
	Unit     Unit
}

func (p Pair) String() string {
	name := p.Unit.String()
	if p.Quantity != 1 {
		name += "s"
	}
	return fmt.Sprintf("%d %s", p.Quantity, name)
}

// Phrase is an ordered list of pairs. The pairs combine additively.
type Phrase []Pair

// String re-describes the phrase in canonical form, e.g. "1 month 2 weeks".
func (p Phrase) String() string {
	parts := make([]string, len(p))
	for i, pair := range p {
		parts[i] = pair.String()
	}
	return strings.Join(parts, " ")
}

// connectors are skipped between pairs.
var connectors = map[string]bool{
	"and": true,
	"&":   true,
	"ago": true,
}

// Parse splits s into quantity-unit pairs. Text following the last
// complete pair is ignored as long as it does not start with a quantity.
func Parse(s string) (Phrase, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return nil, &ParseError{Phrase: s, Reason: "empty phrase"}
	}

	var phrase Phrase
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if connectors[strings.ToLower(tok)] {
			i++
			continue
		}

		if !startsQuantity(tok) {
			if len(phrase) == 0 {
				return nil, &ParseError{Phrase: s, Reason: fmt.Sprintf("expected a quantity, got %q", tok)}
			}
			break
		}

		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, &ParseError{Phrase: s, Reason: fmt.Sprintf("invalid quantity %q", tok)}
		}
		if n < 0 {
			return nil, &ParseError{Phrase: s, Reason: fmt.Sprintf("negative quantity %d", n)}
		}

		if i+1 >= len(tokens) {
			return nil, &ParseError{Phrase: s, Reason: fmt.Sprintf("missing unit after %q", tok)}
		}
		unit, ok := LookupUnit(tokens[i+1])
		if !ok {
			return nil, &ParseError{Phrase: s, Reason: fmt.Sprintf("unknown unit %q", tokens[i+1])}
		}

		phrase = append(phrase, Pair{Quantity: n, Unit: unit})
		i += 2
	}

	if len(phrase) == 0 {
		return nil, &ParseError{Phrase: s, Reason: "no quantity-unit pair found"}
	}
	return phrase, nil
}

// tokenize splits on whitespace and commas, then splits glued tokens such
// as "2d" or "1h30m" into alternating quantity and unit tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, splitGlued(f)...)
	}
	return tokens
}

func splitGlued(f string) []string {
	if !startsQuantity(f) {
		return []string{f}
	}

	var parts []string
	start := 0
	for i := 1; i < len(f); i++ {
		if isLetter(f[i]) != isLetter(f[i-1]) {
			parts = append(parts, f[start:i])
			start = i
		}
	}
	return append(parts, f[start:])
}

// startsQuantity reports whether tok looks like a (possibly signed) number.
func startsQuantity(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] == '-' || tok[0] == '+' {
		return len(tok) > 1 && isDigit(tok[1])
	}
	return isDigit(tok[0])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
