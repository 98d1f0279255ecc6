package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCost is returned when a trip cost value cannot be coerced into a
// usable decimal amount.
var ErrInvalidCost = errors.New("invalid trip cost")

// ParseCost coerces a raw trip_cost value into a non-negative finite float64.
// The recipients file may carry the cost as a JSON number or a numeric string;
// decoded numbers arrive here as json.Number.
func ParseCost(value any) (float64, error) {
	var (
		cost float64
		err  error
	)

	switch v := value.(type) {
	case json.Number:
		cost, err = v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidCost, err)
		}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("%w: value is empty", ErrInvalidCost)
		}
		cost, err = strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCost, v)
		}
	case float64:
		cost = v
	case float32:
		cost = float64(v)
	case int:
		cost = float64(v)
	case int64:
		cost = float64(v)
	case nil:
		return 0, fmt.Errorf("%w: value is missing", ErrInvalidCost)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidCost, value)
	}

	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, fmt.Errorf("%w: value is not finite", ErrInvalidCost)
	}
	if cost < 0 {
		return 0, fmt.Errorf("%w: value is negative", ErrInvalidCost)
	}

	return cost, nil
}

// Stringify renders a scalar JSON value the way it should appear in an email
// body or a log field. Missing values render as the empty string.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
