// Package codec holds ready-made serializer overrides for common YANG types.
package codec

import (
	"fmt"
	"reflect"
	"time"

	yangwire "github.com/reoring/yangwire"
)

// DateAndTime returns an override that writes time.Time values as RFC 3339
// date-and-time strings and reads them back.
//
//	yangwire.OverrideType[time.Time](ov, codec.DateAndTime())
func DateAndTime() yangwire.Override {
	return yangwire.Override{
		Format: func(v any) (string, error) {
			switch t := v.(type) {
			case time.Time:
				return formatDateAndTime(t), nil
			case *time.Time:
				if t == nil {
					return "", fmt.Errorf("nil time")
				}
				return formatDateAndTime(*t), nil
			}
			return "", fmt.Errorf("expected time.Time, got %T", v)
		},
		Parse: func(text string, t reflect.Type) (any, error) {
			if t != reflect.TypeFor[time.Time]() {
				return nil, fmt.Errorf("date-and-time cannot build %s", t)
			}
			return parseDateAndTime(text)
		},
	}
}

func parseDateAndTime(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatDateAndTime(t time.Time) string {
	// UTC, RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
