package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Parsing errors for the student selection enums
var (
	ErrUnknownCategory           = errors.New("unknown reservation category")
	ErrUnknownGender             = errors.New("unknown gender")
	ErrUnknownSpecialReservation = errors.New("unknown special reservation")
)

// Category is the caste/reservation category a student applies under
type Category string

const (
	CategoryOpen Category = "OPEN"
	CategoryOBC  Category = "OBC"
	CategorySC   Category = "SC"
	CategoryST   Category = "ST"
	CategorySEBC Category = "SEBC"
	CategoryNT1  Category = "NT1"
	CategoryNT2  Category = "NT2"
	CategoryNT3  Category = "NT3"
	CategoryVJ   Category = "VJ"
	CategoryEWS  Category = "EWS"
)

var categories = []Category{
	CategoryOpen, CategoryOBC, CategorySC, CategoryST, CategorySEBC,
	CategoryNT1, CategoryNT2, CategoryNT3, CategoryVJ, CategoryEWS,
}

// Categories returns every supported category in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory parses a category name, case-insensitively
func ParseCategory(s string) (Category, error) {
	v := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range categories {
		if c == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// IsCaste reports whether the category has its own gender-prefixed cutoff columns
func (c Category) IsCaste() bool {
	return c != CategoryOpen && c != CategoryEWS && c != ""
}

// Gender of the student
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender parses a gender value, case-insensitively
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

// Prefix returns the cutoff column prefix for the gender.
// Ladies columns start with L; everybody else reads the general G columns.
func (g Gender) Prefix() string {
	if g == GenderFemale {
		return "L"
	}
	return "G"
}

// SpecialReservation is an additional reservation on top of the category
type SpecialReservation string

const (
	SpecialNone    SpecialReservation = "None"
	SpecialPWD     SpecialReservation = "PWD"
	SpecialDefence SpecialReservation = "Defence"
	SpecialOrphan  SpecialReservation = "Orphan"
)

// ParseSpecialReservation parses a special reservation. Empty, "No" and "None" mean none.
func ParseSpecialReservation(s string) (SpecialReservation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NO", "NONE":
		return SpecialNone, nil
	case "PWD":
		return SpecialPWD, nil
	case "DEF", "DEFENCE", "DEFENSE":
		return SpecialDefence, nil
	case "ORPHAN":
		return SpecialOrphan, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSpecialReservation, s)
}
