package entities

import "time"

// Storage formats for dates and timestamps. Both are fixed-width and
// zero-padded so lexicographic comparison matches chronological order.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// Today returns the current day in storage format.
func Today() string {
	return time.Now().Format(DateFormat)
}

// Now returns the current timestamp in storage format.
func Now() string {
	return time.Now().Format(TimestampFormat)
}

// AddDays shifts a storage-format date by the given number of days.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateFormat), nil
}
