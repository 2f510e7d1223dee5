package util

import "time"

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// DateOnly drops the clock part of t, keeping its location.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// IsBusinessDay reports whether t falls Monday through Friday. Holidays are not considered.
func IsBusinessDay(t time.Time) bool {
    switch t.Weekday() {
    case time.Saturday, time.Sunday:
        return false
    }
    return true
}

// NextBusinessDays returns the n weekdays strictly after last, in order.
func NextBusinessDays(last time.Time, n int) []time.Time {
    if n <= 0 {
        return nil
    }
    out := make([]time.Time, 0, n)
    d := DateOnly(last)
    for len(out) < n {
        d = d.AddDate(0, 0, 1)
        if IsBusinessDay(d) {
            out = append(out, d)
        }
    }
    return out
}
