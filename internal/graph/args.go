package graph

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/service"
)

const dateOnlyLayout = "2006-01-02"

func badInput(format string, args ...any) error {
	return &service.Error{Kind: service.ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// formatTime renders timestamps for clients.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates. dateOnly
// reports which form was given.
func parseDate(field, raw string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, badInput("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", field)
}

// endOfDay returns the last instant of the day t starts, at storage precision.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Microsecond)
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func optionalString(args map[string]interface{}, key string) *string {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &v
}

func inputArg(args map[string]interface{}) map[string]interface{} {
	in, _ := args["input"].(map[string]interface{})
	if in == nil {
		return map[string]interface{}{}
	}
	return in
}

func optionalDate(args map[string]interface{}, key string) (*time.Time, error) {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return nil, nil
	}
	t, _, err := parseDate(key, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalAmount(args map[string]interface{}, key string) (*decimal.Decimal, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}
	var d decimal.Decimal
	switch n := v.(type) {
	case float64:
		d = decimal.NewFromFloat(n)
	case float32:
		d = decimal.NewFromFloat32(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case string:
		parsed, err := decimal.NewFromString(n)
		if err != nil {
			return nil, badInput("%s must be a number", key)
		}
		d = parsed
	default:
		return nil, badInput("%s must be a number", key)
	}
	return &d, nil
}

func optionalEntryType(args map[string]interface{}, key string) *models.EntryType {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	t := models.EntryType(v)
	return &t
}

func optionalPeriod(args map[string]interface{}, key string) *models.Period {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	p := models.Period(v)
	return &p
}

func floatOf(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
