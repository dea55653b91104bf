package readers

import (
	"math"
	"strconv"
	"time"
)

// The builder stores rich_content as a schemaless JSON bag. These helpers
// give it Number(x)||0 / String(x||'') coercion so a half-filled payload
// never breaks a reader.

func rawMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func rawSlice(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func num(m map[string]any, key string) float64 {
	return toNumber(m[key])
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func str(m map[string]any, key string) string {
	switch s := m[key].(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// strOr returns def when the value is missing or empty.
func strOr(m map[string]any, key, def string) string {
	if s := str(m, key); s != "" {
		return s
	}
	return def
}

func boolVal(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// notFalse models the `x !== false` checks on enabled/show_* flags:
// absent means true.
func notFalse(m map[string]any, key string) bool {
	b, ok := m[key].(bool)
	return !ok || b
}

func strList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// --------------------------------------------------
// DATE / TIME DERIVATIONS
// --------------------------------------------------

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// calculateNights returns the ceiled day difference between two dates,
// floored at 0.
func calculateNights(checkIn, checkOut string) int {
	in, ok1 := parseDate(checkIn)
	out, ok2 := parseDate(checkOut)
	if !ok1 || !ok2 {
		return 0
	}
	diff := out.Sub(in).Hours() / 24
	nights := int(math.Ceil(diff))
	if nights < 0 {
		return 0
	}
	return nights
}

// legDuration formats the elapsed time between two HH:MM times. An arrival
// earlier than the departure is assumed to land on the next day.
func legDuration(departureTime, arrivalTime string) string {
	if departureTime == "" || arrivalTime == "" {
		return ""
	}
	dep, err1 := time.Parse("15:04", departureTime)
	arr, err2 := time.Parse("15:04", arrivalTime)
	if err1 != nil || err2 != nil {
		return ""
	}
	if arr.Before(dep) {
		arr = arr.Add(24 * time.Hour)
	}
	d := arr.Sub(dep)
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return strconv.Itoa(mins) + "min"
	case mins == 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(hours) + "h" + strconv.Itoa(mins) + "min"
	}
}
