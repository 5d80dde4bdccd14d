package cart

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

// TotalPriceKey overrides the product base price when present and non-zero.
const TotalPriceKey = "totalPrice"

// Customization maps option names (size, flavor, frosting, ...) to their chosen values.
type Customization map[string]any

// normalize rewrites values into their JSON shapes (float64, string, []any, map[string]any)
// so that a customization built in Go and one decoded from a request compare equal.
// Values JSON cannot encode (NaN, channels) leave a shallow copy instead.
func (c Customization) normalize() Customization {
	if len(c) == 0 {
		return Customization{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return maps.Clone(c)
	}
	var out Customization
	if err := json.Unmarshal(raw, &out); err != nil {
		return maps.Clone(c)
	}
	return out
}

// Equal reports deep equality. Nil and empty customizations are equal.
func (c Customization) Equal(other Customization) bool {
	// Compared as plain maps: cmp would otherwise call back into this method.
	return cmp.Equal(map[string]any(c.normalize()), map[string]any(other.normalize()), cmpopts.EquateEmpty())
}

// Clone returns a deep copy.
func (c Customization) Clone() Customization {
	return c.normalize()
}

// PriceOverride returns the totalPrice entry when it is present and non-zero.
func (c Customization) PriceOverride() (decimal.Decimal, bool) {
	v, ok := c[TotalPriceKey]
	if !ok || v == nil {
		return decimal.Zero, false
	}
	d, err := toDecimal(v)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}
	return d, true
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(t)
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", v)
	}
}
