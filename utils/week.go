package utils

import "time"

// DateOnly strips the clock from t, keeping year/month/day in UTC so DATE
// columns and map keys compare by calendar day regardless of input zone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the ISO week containing t, date-normalized.
// Monday maps to offset 0 and Sunday to 6.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// ParseDate parses a YYYY-MM-DD form value into a normalized date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(d), nil
}

// FormatDate renders a date the way forms and templates expect it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
