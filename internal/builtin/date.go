package builtin

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowbylang/flowby/internal/value"
)

// DateNamespace represents dates and times as Unix epoch seconds (an Int
// Value), since the closed Value union has no dedicated date Kind.
type DateNamespace struct{}

func (DateNamespace) Name() string { return "Date" }

func (DateNamespace) Invoke(method string, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	switch method {
	case "now":
		return value.Int(time.Now().Unix()), nil
	case "encode":
		return encodeDate(args)
	case "format":
		return formatDate(args)
	case "year", "month", "day", "hour", "minute", "second", "weekday":
		return dateComponent(method, args)
	case "addDays":
		return addDuration(args, func(n int64) time.Duration { return time.Duration(n) * 24 * time.Hour })
	case "addHours":
		return addDuration(args, func(n int64) time.Duration { return time.Duration(n) * time.Hour })
	default:
		return value.None, fmt.Errorf("Date has no member %q", method)
	}
}

func epochArg(args []value.Value, i int) (time.Time, error) {
	if i >= len(args) || args[i].Kind() != value.KindInt {
		return time.Time{}, fmt.Errorf("expected an epoch-seconds Int argument")
	}
	return time.Unix(args[i].AsInt(), 0).UTC(), nil
}

func encodeDate(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return value.None, fmt.Errorf("Date.encode() expects (year, month, day)")
	}
	t := time.Date(int(args[0].AsInt()), time.Month(args[1].AsInt()), int(args[2].AsInt()), 0, 0, 0, 0, time.UTC)
	return value.Int(t.Unix()), nil
}

func formatDate(args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[1].Kind() != value.KindString {
		return value.None, fmt.Errorf("Date.format() expects (epoch, layout)")
	}
	t, err := epochArg(args, 0)
	if err != nil {
		return value.None, err
	}
	return value.String(t.Format(goLayout(args[1].AsString()))), nil
}

// goLayout translates a handful of common strftime-style tokens to Go's
// reference-time layout, covering the cases a Flowby script is likely to
// write without requiring the full strftime table.
func goLayout(pattern string) string {
	replacer := strings.NewReplacer(
		"YYYY", "2006", "MM", "01", "DD", "02",
		"HH", "15", "mm", "04", "ss", "05",
	)
	return replacer.Replace(pattern)
}

func dateComponent(method string, args []value.Value) (value.Value, error) {
	t, err := epochArg(args, 0)
	if err != nil {
		return value.None, err
	}
	switch method {
	case "year":
		return value.Int(int64(t.Year())), nil
	case "month":
		return value.Int(int64(t.Month())), nil
	case "day":
		return value.Int(int64(t.Day())), nil
	case "hour":
		return value.Int(int64(t.Hour())), nil
	case "minute":
		return value.Int(int64(t.Minute())), nil
	case "second":
		return value.Int(int64(t.Second())), nil
	case "weekday":
		return value.Int(int64(t.Weekday())), nil
	}
	return value.None, fmt.Errorf("unknown date component %q", method)
}

func addDuration(args []value.Value, toDuration func(int64) time.Duration) (value.Value, error) {
	if len(args) != 2 {
		return value.None, fmt.Errorf("expects (epoch, amount)")
	}
	t, err := epochArg(args, 0)
	if err != nil {
		return value.None, err
	}
	return value.Int(t.Add(toDuration(args[1].AsInt())).Unix()), nil
}
