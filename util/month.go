package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/lctime"
)

// Booking partitions are keyed by calendar month, e.g. "january_2026".
// Writes always resolve through CurrentMonthKey; explicit keys are only
// accepted for historical reads.

func MonthKey(t time.Time) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(t.Month().String()), t.Year())
}

func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// PreviousMonth returns the first day of the month before t.
func PreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
}

func PreviousMonthKey(t time.Time) string {
	return MonthKey(PreviousMonth(t))
}

func MonthKeysForYear(year int) []string {
	keys := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		keys = append(keys, fmt.Sprintf("%s_%d", strings.ToLower(m.String()), year))
	}
	return keys
}

// ResolveMonthKey normalizes a caller-supplied month query. Empty and
// "current" resolve to the current month, a bare month name resolves against
// the current year, and a full "<month>_<year>" key passes through with the
// year validated as a positive number, so a garbage key never reaches the
// partition registry. The bool reports whether the input named a valid month.
func ResolveMonthKey(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "current" {
		return CurrentMonthKey(), true
	}

	name, year, found := strings.Cut(raw, "_")
	if !found {
		year = fmt.Sprintf("%d", time.Now().Year())
	} else if y, err := strconv.Atoi(year); err != nil || y < 1 {
		return "", false
	}
	for m := time.January; m <= time.December; m++ {
		if name == strings.ToLower(m.String()) {
			return name + "_" + year, true
		}
	}
	return "", false
}

func PartitionCollection(key string) string {
	return "bookings_" + key
}

// MonthLabel renders a human month heading for reports, e.g. "January 2026".
func MonthLabel(t time.Time) string {
	return lctime.Strftime("%B %Y", t)
}

func Today() string {
	return time.Now().Format("2006-01-02")
}
