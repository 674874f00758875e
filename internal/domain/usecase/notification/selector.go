package notification

import "time"

// DefaultEpoch aligns every notification schedule.
var DefaultEpoch = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

// ElapsedHours returns floor((now - epoch) / 1h), rounding toward negative infinity.
func ElapsedHours(epoch, now time.Time) int64 {
	elapsed := now.Sub(epoch)
	hours := int64(elapsed / time.Hour)
	if elapsed < 0 && elapsed%time.Hour != 0 {
		hours--
	}
	return hours
}

// IsDue reports whether a subscription with the given frequency in hours fires at elapsedHours.
func IsDue(elapsedHours int64, frequency int) bool {
	if frequency <= 0 {
		return false
	}
	f := int64(frequency)
	return ((elapsedHours%f)+f)%f == 0
}
