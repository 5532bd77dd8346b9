package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// Layouts accepted for booking dates besides RFC 3339. Values without a zone
// are taken as UTC.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var timeType = reflect.TypeOf(time.Time{})

// UnmarshalJSON accepts pickupDate and returnDate as RFC 3339, a date such
// as "2025-06-01", or epoch milliseconds. Fields absent from data are left
// untouched.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type booking Booking
	aux := struct {
		*booking
		PickupDate json.RawMessage `json:"pickupDate"`
		ReturnDate json.RawMessage `json:"returnDate"`
	}{booking: (*booking)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if aux.PickupDate != nil {
		if b.PickupDate, err = parseDate(aux.PickupDate, "pickupDate"); err != nil {
			return err
		}
	}
	if aux.ReturnDate != nil {
		if b.ReturnDate, err = parseDate(aux.ReturnDate, "returnDate"); err != nil {
			return err
		}
	}
	return nil
}

// parseDate decodes one date value. Anything that is not a date comes back
// as a *json.UnmarshalTypeError naming field.
func parseDate(raw json.RawMessage, field string) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	typeErr := func(value string) error {
		return &json.UnmarshalTypeError{Value: value, Type: timeType, Field: field}
	}

	switch {
	case bytes.Equal(raw, []byte("null")):
		return time.Time{}, nil
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, typeErr("string")
		}
		if s == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, typeErr("string " + strconv.Quote(s))
	case len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')):
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return time.Time{}, typeErr("number " + string(raw))
		}
		return time.UnixMilli(int64(ms)).UTC(), nil
	default:
		return time.Time{}, typeErr("non-date value")
	}
}
