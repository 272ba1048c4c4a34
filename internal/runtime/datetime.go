// datetime backs spec.md §4.5's datetime module. Every function
// returns an ISO-8601 string rather than a structured object, per
// registry.go's signatures (all return tStr()) — stdlib time.Time's
// Format/Unix cover the full surface.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerDatetime(r *Registry) {
	r.register("datetime", map[string]Fn{
		"now":              datetimeNow,
		"utcnow":           datetimeUTCNow,
		"fromtimestamp":    datetimeFromTimestamp,
		"utcfromtimestamp": datetimeUTCFromTimestamp,
	})
}

const isoLayout = "2006-01-02T15:04:05.000000"

func datetimeNow(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("now takes no arguments")
	}
	return value.Str(time.Now().Format(isoLayout)), nil
}

func datetimeUTCNow(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("utcnow takes no arguments")
	}
	return value.Str(time.Now().UTC().Format(isoLayout)), nil
}

func timestampToTime(seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func datetimeFromTimestamp(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("fromtimestamp takes 1 argument")
	}
	return value.Str(timestampToTime(args[0].Float).Format(isoLayout)), nil
}

func datetimeUTCFromTimestamp(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("utcfromtimestamp takes 1 argument")
	}
	return value.Str(timestampToTime(args[0].Float).UTC().Format(isoLayout)), nil
}
