package domain

import "fmt"

// Weekday enumerates the day of the week an exercise is scheduled on.
// The values are the exact strings the API clients exchange.
type Weekday string

// Possible weekday values.
const (
	Monday    Weekday = "Lunes"
	Tuesday   Weekday = "Martes"
	Wednesday Weekday = "Miercoles"
	Thursday  Weekday = "Jueves"
	Friday    Weekday = "Viernes"
	Saturday  Weekday = "Sabado"
	Sunday    Weekday = "Domingo"
)

// ErrInvalidWeekday is returned when a weekday value is not one of the
// seven known days.
var ErrInvalidWeekday = fmt.Errorf("%w: invalid day of week", ErrValidation)

// Weekdays lists all valid weekday values in calendar order.
var Weekdays = []Weekday{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// Valid reports whether the weekday is one of the seven known days.
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// ParseWeekday converts a raw string into a Weekday.
// Returns ErrInvalidWeekday if the value is not a known day.
func ParseWeekday(raw string) (Weekday, error) {
	d := Weekday(raw)
	if !d.Valid() {
		return "", ErrInvalidWeekday
	}
	return d, nil
}
