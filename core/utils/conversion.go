package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt32 converts various types to int32 using explicit type switching.
// It handles integer types, whole floats, numeric strings and byte slices.
func ToInt32(val any) (int32, error) {
	var n int64
	switch v := val.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case int32:
		return v, nil
	case int16:
		return int32(v), nil
	case int8:
		return int32(v), nil
	case uint:
		if uint64(v) > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of int32 range", v)
		}
		return int32(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("value %d out of int32 range", v)
		}
		return int32(v), nil
	case uint32:
		n = int64(v)
	case uint16:
		return int32(v), nil
	case uint8:
		return int32(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("value %v is not a whole number", v)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("value %v out of int32 range", v)
		}
		return int32(v), nil
	case float32:
		return ToInt32(float64(v))
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q: %w", v, err)
		}
		return int32(i), nil
	case []byte:
		return ToInt32(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to int32", val)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of int32 range", n)
	}
	return int32(n), nil
}

// ToFloat32 converts numeric types and numeric strings to float32.
func ToFloat32(val any) (float32, error) {
	switch v := val.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case int:
		return float32(v), nil
	case int64:
		return float32(v), nil
	case int32:
		return float32(v), nil
	case uint32:
		return float32(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			return 0, fmt.Errorf("invalid float %q: %w", v, err)
		}
		return float32(f), nil
	case []byte:
		return ToFloat32(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to float32", val)
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8, float64, float32:
		n, err := ToInt32(v)
		return err == nil && n == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}

// SplitAssignment splits "name=type:value" into its parts. The type is
// optional; "name=value" yields an empty type.
func SplitAssignment(s string) (name, typ, value string, err error) {
	name, rest, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", "", fmt.Errorf("invalid assignment %q, expected name=type:value", s)
	}
	if t, v, ok := strings.Cut(rest, ":"); ok {
		switch strings.ToLower(t) {
		case "int", "integer", "float", "string", "str":
			return name, strings.ToLower(t), v, nil
		}
	}
	return name, "", rest, nil
}
