package utils

import "time"

const (
	layoutDateCompact = "20060102"
	layoutDateIndian  = "02-01-2006"
)

// NowUTC returns current time in UTC.
var NowUTC = func() time.Time {
	return time.Now().UTC()
}

// CompactDate formats time as YYYYMMDD (booking number scope).
func CompactDate(t time.Time) string {
	return t.UTC().Format(layoutDateCompact)
}

// IndianDate formats time as DD-MM-YYYY for printed documents.
func IndianDate(t time.Time) string {
	return t.Format(layoutDateIndian)
}
