package core

import "time"

// WeekRange returns the inclusive Monday..Sunday window containing d.
func WeekRange(d Date) (Date, Date) {
	// time.Weekday counts Sunday as 0; shift so Monday is the week start.
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDays(-offset)
	return start, start.AddDays(6)
}

// MonthRange returns the first and last calendar day of d's month. The end
// is computed by stepping into the next month and subtracting one day, with
// the December to January year rollover handled explicitly.
func MonthRange(d Date) (Date, Date) {
	start := NewDate(d.Year(), d.Month(), 1)
	var next Date
	if time.Month(d.Month()) == time.December {
		next = NewDate(d.Year()+1, 1, 1)
	} else {
		next = NewDate(d.Year(), d.Month()+1, 1)
	}
	return start, next.AddDays(-1)
}

// YearRange returns January 1 through December 31 of the given year.
func YearRange(year int) (Date, Date) {
	return NewDate(year, 1, 1), NewDate(year, 12, 31)
}

// Month returns the calendar month as an int, shadowing time.Time's Month
// so callers get a plain number.
func (d Date) Month() int {
	return int(d.Time.Month())
}
