// calendar backs SPEC_FULL.md's supplemented calendar module
// (isleap/monthrange), computed directly from the Gregorian rule and
// stdlib time rather than any external date library.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerCalendar(r *Registry) {
	r.register("calendar", map[string]Fn{
		"isleap":     calendarIsleap,
		"monthrange": calendarMonthrange,
	})
}

func isLeapYear(y int64) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func calendarIsleap(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("isleap takes 1 argument")
	}
	return value.Bool(isLeapYear(args[0].Int)), nil
}

func calendarMonthrange(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("monthrange takes 2 arguments")
	}
	year, month := int(args[0].Int), int(args[1].Int)
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	firstOfNext := firstOfMonth.AddDate(0, 1, 0)
	daysInMonth := int(firstOfNext.Sub(firstOfMonth).Hours() / 24)
	weekday := (int(firstOfMonth.Weekday()) + 6) % 7 // Python: Monday == 0
	return value.Tuple([]value.Value{value.Int(int64(weekday)), value.Int(int64(daysInMonth))}), nil
}
