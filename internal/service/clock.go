package service

import "time"

// Clock returns the current time in the portal's time zone.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t. Used in tests and by the seeder.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

const clockLayout = "15:04"

// ParseClock parses an HH:MM wall-clock value into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, invalidf("clock %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, invalidf("date %q", s)
	}
	return d, nil
}
