package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Helpers for reading loosely-typed DonorDrive JSON objects. Optional
// fields fall back to zero values; required fields read through money()
// stay invalid when absent so callers can tell "missing" from "zero".

func str(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func strDefault(data map[string]any, key, def string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return def
}

func boolean(data map[string]any, key string) bool {
	v, _ := data[key].(bool)
	return v
}

func integer(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case int:
		return v
	}
	return 0
}

// money reads a monetary amount. The result is invalid when the key is
// absent or not numeric, which downstream code treats as a data quality
// signal, never an error.
func money(data map[string]any, key string) decimal.NullDecimal {
	switch v := data[key].(type) {
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return decimal.NewNullDecimal(d)
		}
	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(v)))
	}
	return decimal.NullDecimal{}
}

// moneyOrZero reads a monetary amount, substituting zero when absent.
// Used for entity scalars where a missing value means "nothing yet".
func moneyOrZero(data map[string]any, key string) decimal.Decimal {
	return money(data, key).Decimal
}

func object(data map[string]any, key string) map[string]any {
	if v, ok := data[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}
