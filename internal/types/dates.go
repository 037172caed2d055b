package types

import (
	"fmt"
	"time"
)

// civilDateLayout is the wire format for calendar dates throughout the API.
const civilDateLayout = "2006-01-02"

// CivilDate is a calendar date with no time-of-day component. All date math in
// the prediction pipeline goes through CivilDate so that timezone and DST
// effects cannot shift a day boundary.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCivilDate parses a date string in YYYY-MM-DD format.
// Returns an AppError with code validation_invalid_date on malformed input.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return CivilDate{}, NewAppError(
			ErrCodeValidationInvalidDate,
			fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", s),
			err,
		)
	}
	return CivilDateOf(t), nil
}

// CivilDateOf extracts the calendar date from t in t's location.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// String renders the date as YYYY-MM-DD.
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays returns the date n days after d, normalizing month/year overflow.
func (d CivilDate) AddDays(n int) CivilDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return CivilDateOf(t)
}

// After reports whether d is strictly after other.
func (d CivilDate) After(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// IsZero reports whether d is the zero value.
func (d CivilDate) IsZero() bool {
	return d == CivilDate{}
}

// MarshalJSON renders the date as a JSON string in YYYY-MM-DD format.
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string in YYYY-MM-DD format.
func (d *CivilDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("civil date must be a JSON string, got %s", s)
	}
	parsed, err := ParseCivilDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
