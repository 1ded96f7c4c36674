package analytic

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Distribution maps analytic account keys to allocation percentages.
// It is persisted as a JSON object; the keys are what linkage queries match on.
type Distribution map[string]decimal.Decimal

// Single returns a distribution allocating 100% to one account
func Single(accountID uuid.UUID) Distribution {
	return Distribution{Key(accountID): hundred}
}

// Has reports whether the distribution references the account
func (d Distribution) Has(accountID uuid.UUID) bool {
	_, ok := d[Key(accountID)]
	return ok
}

// Keys returns the referenced account keys in sorted order
func (d Distribution) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks keys are account ids and weights are in (0, 100]
func (d Distribution) Validate() error {
	for k, w := range d {
		if _, err := uuid.Parse(k); err != nil {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Analytic distribution key %q is not an account id", k))
		}
		if !w.IsPositive() || w.GreaterThan(hundred) {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Analytic distribution weight for %s must be in (0, 100]", k))
		}
	}
	return nil
}

// Value implements driver.Valuer. Weights are written as JSON numbers.
func (d Distribution) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	raw := make(map[string]json.Number, len(d))
	for k, w := range d {
		raw[k] = json.Number(w.String())
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (d *Distribution) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Distribution", value)
	}
	if len(b) == 0 {
		*d = nil
		return nil
	}
	var out map[string]decimal.Decimal
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("failed to decode analytic distribution: %w", err)
	}
	*d = out
	return nil
}
