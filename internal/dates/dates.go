// Package dates converts between the textual calendar-date forms used at
// the system boundary without ever routing an unambiguous date through a
// local-timezone construction. A date parsed from its fields and formatted
// back must be the same date in every timezone the process runs in.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	canonicalRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	displayRE   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
)

// FormatError reports an input that matches none of the recognized date
// forms and fails generic parsing as well.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Input)
}

// Date is a calendar date with explicit integer fields. Construct one
// only through Parse so the fields always describe a valid calendar day.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse recognizes, in priority order:
//
//  1. YYYY-MM-DD (canonical)
//  2. MM/DD/YYYY (display entry, month/day 1-2 digits)
//  3. ISO-8601 with a time component: the part before 'T' is treated as
//     form 1
//  4. anything else: a UTC-anchored generic parse
//
// Inputs failing all four yield a *FormatError. Inputs matching a form
// but naming an impossible calendar day (2023-02-30) are also rejected.
func Parse(input string) (Date, error) {
	s := strings.TrimSpace(input)

	if canonicalRE.MatchString(s) {
		return fromFields(s[0:4], s[5:7], s[8:10], input)
	}

	if displayRE.MatchString(s) {
		parts := strings.Split(s, "/")
		return fromFields(parts[2], parts[0], parts[1], input)
	}

	if i := strings.IndexByte(s, 'T'); i > 0 {
		datePart := s[:i]
		if canonicalRE.MatchString(datePart) {
			return fromFields(datePart[0:4], datePart[5:7], datePart[8:10], input)
		}
	}

	// Last resort: generic parse, anchored to UTC so the extracted
	// fields cannot shift a day near midnight offsets.
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "January 2, 2006", "Jan 2, 2006"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
		}
	}

	return Date{}, &FormatError{Input: input}
}

// fromFields builds a Date from already-split digit strings, rejecting
// impossible calendar days.
func fromFields(year, month, day, input string) (Date, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > daysIn(y, m) {
		return Date{}, &FormatError{Input: input}
	}
	return Date{Year: y, Month: m, Day: d}, nil
}

func daysIn(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29
	}
	return 28
}

// Canonical returns the YYYY-MM-DD storage representation.
func (d Date) Canonical() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Display returns the MM/DD/YYYY representation with zero-padded month
// and day.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Month, d.Day, d.Year)
}

// Age returns the whole-years age of the date as of the given instant,
// comparing (month, day) pairs on UTC calendar fields so both sides use
// the same calendar. The pair comparison makes the result insensitive
// to varying month lengths.
func (d Date) Age(asOf time.Time) int {
	now := asOf.UTC()
	age := now.Year() - d.Year
	if int(now.Month()) < d.Month || (int(now.Month()) == d.Month && now.Day() < d.Day) {
		age--
	}
	return age
}

// ToCanonical converts any recognized input form to YYYY-MM-DD.
func ToCanonical(input string) (string, error) {
	d, err := Parse(input)
	if err != nil {
		return "", err
	}
	return d.Canonical(), nil
}

// ToDisplay converts any recognized input form to MM/DD/YYYY.
func ToDisplay(input string) (string, error) {
	d, err := Parse(input)
	if err != nil {
		return "", err
	}
	return d.Display(), nil
}

// DisplayOrRaw converts to display form, falling back to the raw input
// when it is unparseable. Display-only call sites prefer showing what
// the user typed over failing.
func DisplayOrRaw(input string) string {
	if out, err := ToDisplay(input); err == nil {
		return out
	}
	return input
}

// CalculateAge parses a canonical birthdate and returns the whole-years
// age as of now.
func CalculateAge(canonicalBirthdate string, asOf time.Time) (int, error) {
	d, err := Parse(canonicalBirthdate)
	if err != nil {
		return 0, err
	}
	return d.Age(asOf), nil
}
