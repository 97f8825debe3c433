package services

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Raw listing values are what encoding/json produces for an untyped
// document: nil, bool, json.Number (or float64), string, []any and
// map[string]any. Every helper below works against that view.

var (
	// decimalRegexp accepts plain signed decimals such as "995", "1.2", ".5".
	decimalRegexp = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

	priceCleaner = strings.NewReplacer("$", "", ",", "", " ", "")
)

// present reports whether a raw value should satisfy a fallback chain.
// Null, false, empty strings and empty containers fall through to the next
// source; numeric zero does not.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// lookup walks nested objects by key. Any missing key or non-object step
// yields nil.
func lookup(raw map[string]any, keys ...string) any {
	var current any = raw
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}

// parsePrice converts a price-like value to whole currency units.
// Numbers are truncated. Strings lose "$", "," and spaces, then an optional
// trailing k/K (thousands) or m/M (millions) scales the remainder exactly,
// so "1.2M" is 1200000.
func parsePrice(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return truncateNumber(v)
	}

	cleaned := priceCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, false
	}

	exponent := 0
	switch cleaned[len(cleaned)-1] {
	case 'k', 'K':
		exponent = 3
		cleaned = cleaned[:len(cleaned)-1]
	case 'm', 'M':
		exponent = 6
		cleaned = cleaned[:len(cleaned)-1]
	}

	if !decimalRegexp.MatchString(cleaned) {
		return 0, false
	}
	return scaleDecimal(cleaned, exponent)
}

// scaleDecimal multiplies a plain decimal string by 10^exponent and
// truncates toward zero without going through floating point.
func scaleDecimal(s string, exponent int) (int64, bool) {
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) < exponent {
		frac += strings.Repeat("0", exponent-len(frac))
	}
	digits := whole + frac[:exponent]
	if digits == "" {
		digits = "0"
	}
	n, err := strconv.ParseInt(sign+digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseCount converts a bedroom-style count. Whole numbers and integer
// strings pass; fractional values and other strings do not.
func parseCount(v any) (int64, bool) {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return wholeFloat(f)
	case float64:
		return wholeFloat(t)
	case float32:
		return wholeFloat(float64(t))
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	}
	return 0, false
}

// parseFloat converts numbers and numeric strings to a finite float64.
func parseFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseArea converts a living-area value to a whole number. Strings may
// carry thousands separators and a decimal part ("1,250.5" is 1250).
func parseArea(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return truncateNumber(v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
	if err != nil {
		return 0, false
	}
	return truncateFloat(f)
}

// textValue accepts string values only.
func textValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// scalarText renders strings and numbers as text. Numbers keep their
// source spelling when decoded as json.Number.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func truncateNumber(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		r, ok := new(big.Rat).SetString(t.String())
		if !ok {
			return 0, false
		}
		return truncateRat(r)
	case float64:
		return truncateFloat(t)
	case float32:
		return truncateFloat(float64(t))
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	}
	return 0, false
}

func truncateRat(r *big.Rat) (int64, bool) {
	n := new(big.Int).Quo(r.Num(), r.Denom())
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

func truncateFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func wholeFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	return truncateFloat(f)
}
