// internal/app/system/flatten/age.go
package flatten

import "time"

// Age returns the completed years between dateOfBirth and now, or nil when
// the date of birth is missing or unusable. Ages are derived at evaluation
// time and never stored; a nil result serializes as JSON null, never as 0.
func Age(dateOfBirth *time.Time, now time.Time) *int {
	if dateOfBirth == nil || dateOfBirth.IsZero() {
		return nil
	}
	dob := *dateOfBirth
	years := now.Year() - dob.Year()
	// Birthday not yet reached this year.
	anniversary := time.Date(now.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return &years
}
