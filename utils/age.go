package utils

import "time"

// CalculateAge returns the age in whole years at the given reference time.
// A zero date of birth yields 0.
func CalculateAge(dateOfBirth, now time.Time) int {
	if dateOfBirth.IsZero() {
		return 0
	}

	age := now.Year() - dateOfBirth.Year()
	// Birthday not reached yet this year.
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
