package domain

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("invalid calendar date (must be YYYY-MM-DD)")
	ErrInvalidTimezone = errors.New("invalid IANA timezone")
)

// DateKey is a user-local calendar date in YYYY-MM-DD form.
// Keys compare lexically in chronological order.
type DateKey string

func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return DateKey(t.Format(DateLayout)), nil
}

// LocalCalendarDate is the one place that decides which calendar day an instant
// belongs to. The day is taken in loc, never in UTC.
func LocalCalendarDate(instant time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.UTC
	}
	return DateKey(instant.In(loc).Format(DateLayout))
}

func (d DateKey) String() string {
	return string(d)
}

func (d DateKey) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

// Time returns midnight UTC of the date. Day arithmetic happens in UTC so that
// DST transitions never shift a key.
func (d DateKey) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

func (d DateKey) AddDays(n int) DateKey {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return d
	}
	return DateKey(t.AddDate(0, 0, n).Format(DateLayout))
}

func (d DateKey) Before(other DateKey) bool {
	return d < other
}

func (d DateKey) After(other DateKey) bool {
	return d > other
}

func (d DateKey) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysUntil returns the number of calendar days from d to other.
func (d DateKey) DaysUntil(other DateKey) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// LoadLocation resolves an IANA zone name. "" and "UTC" map to UTC, "Local"
// to the host zone.
func LoadLocation(zone string) (*time.Location, error) {
	switch zone {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// ResolveTimezone picks the first usable zone: the one stored on the user
// profile, then the one detected on the host, then UTC.
func ResolveTimezone(stored, detected string) (string, *time.Location) {
	for _, zone := range []string{stored, detected} {
		if zone == "" {
			continue
		}
		if loc, err := LoadLocation(zone); err == nil {
			return zone, loc
		}
	}
	return "UTC", time.UTC
}

// DetectTimezone reports the host zone name, or "" when the host only knows
// itself as "Local".
func DetectTimezone() string {
	name := time.Local.String()
	if name == "Local" {
		return ""
	}
	return name
}
