// Package expression implements filter domains: prefix-notation lists of
// conditions and boolean operators describing which records a list view shows.
package expression

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Boolean operators. '&' and '|' take two operands, '!' takes one.
const (
	OpAnd = "&"
	OpOr  = "|"
	OpNot = "!"
)

var arity = map[string]int{OpAnd: 2, OpOr: 2, OpNot: 1}

var comparators = map[string]bool{
	"=": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true, "=?": true,
	"in": true, "not in": true,
	"like": true, "not like": true, "ilike": true, "not ilike": true, "=like": true, "=ilike": true,
	"child_of": true, "parent_of": true,
}

// Term is either a boolean operator or a (field, comparator, value) condition.
type Term struct {
	Operator   string
	Field      string
	Comparator string
	Value      any
}

// Domain is a list of terms in prefix notation. Top-level terms are implicitly AND-ed.
type Domain []Term

// Cond builds a condition term
func Cond(field, comparator string, value any) Term {
	return Term{Field: field, Comparator: comparator, Value: value}
}

// Op builds an operator term
func Op(operator string) Term {
	return Term{Operator: operator}
}

// IDsIn returns [("id", "in", ids)]
func IDsIn(ids []uuid.UUID) Domain {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return Domain{Cond("id", "in", values)}
}

// IsOperator reports whether the term is a boolean operator
func (t Term) IsOperator() bool {
	return t.Operator != ""
}

// MarshalJSON renders conditions as [field, comparator, value] and operators as strings
func (t Term) MarshalJSON() ([]byte, error) {
	if t.IsOperator() {
		return json.Marshal(t.Operator)
	}
	return json.Marshal([]any{t.Field, t.Comparator, t.Value})
}

// UnmarshalJSON accepts the forms produced by MarshalJSON
func (t *Term) UnmarshalJSON(b []byte) error {
	var op string
	if err := json.Unmarshal(b, &op); err == nil {
		if _, ok := arity[op]; !ok {
			return fmt.Errorf("unknown domain operator %q", op)
		}
		*t = Op(op)
		return nil
	}

	var leaf []json.RawMessage
	if err := json.Unmarshal(b, &leaf); err != nil {
		return fmt.Errorf("domain term must be an operator or a 3-element condition: %w", err)
	}
	if len(leaf) != 3 {
		return fmt.Errorf("domain condition must have 3 elements, got %d", len(leaf))
	}

	var field, comparator string
	if err := json.Unmarshal(leaf[0], &field); err != nil {
		// (1, '=', 1) style constant leaves use a number on the left
		var n json.Number
		if err2 := json.Unmarshal(leaf[0], &n); err2 != nil {
			return fmt.Errorf("domain condition field must be a string: %w", err)
		}
		field = n.String()
	}
	if err := json.Unmarshal(leaf[1], &comparator); err != nil {
		return fmt.Errorf("domain condition operator must be a string: %w", err)
	}
	if !comparators[comparator] {
		return fmt.Errorf("unknown domain comparator %q", comparator)
	}
	var value any
	if err := json.Unmarshal(leaf[2], &value); err != nil {
		return err
	}
	*t = Cond(field, comparator, value)
	return nil
}

// Normalize returns the domain as a single expression by inserting the
// implicit '&' operators between top-level terms.
func Normalize(d Domain) Domain {
	if len(d) == 0 {
		return Domain{}
	}
	result := make(Domain, 0, len(d)+1)
	expected := 1
	for _, term := range d {
		if expected == 0 {
			result = append(Domain{Op(OpAnd)}, result...)
			expected = 1
		}
		if term.IsOperator() {
			expected += arity[term.Operator] - 1
		} else {
			expected--
		}
		result = append(result, term)
	}
	return result
}

// AND combines domains so that a record must match all of them.
// Empty domains match everything and are dropped.
func AND(domains ...Domain) Domain {
	return combine(OpAnd, domains)
}

// OR combines domains so that a record must match any of them.
func OR(domains ...Domain) Domain {
	return combine(OpOr, domains)
}

func combine(operator string, domains []Domain) Domain {
	var body Domain
	count := 0
	for _, d := range domains {
		if len(d) == 0 {
			continue
		}
		body = append(body, Normalize(d)...)
		count++
	}
	if count == 0 {
		return Domain{}
	}
	result := make(Domain, 0, count-1+len(body))
	for i := 0; i < count-1; i++ {
		result = append(result, Op(operator))
	}
	return append(result, body...)
}
