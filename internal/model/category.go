package model

import "fmt"

// Category is one of the fixed denial categories a claim can be assigned.
type Category string

// Denial categories.
const (
	CategoryEligibility          Category = "Eligibility"
	CategoryCodingError          Category = "Coding Error"
	CategoryPriorAuthorization   Category = "Prior Authorization"
	CategoryIncorrectPatientInfo Category = "Incorrect Patient Info"
	CategoryPayerSpecificRule    Category = "Payer Specific Rule"
	CategoryOther                Category = "Other"
)

var allCategories = [...]Category{
	CategoryEligibility,
	CategoryCodingError,
	CategoryPriorAuthorization,
	CategoryIncorrectPatientInfo,
	CategoryPayerSpecificRule,
	CategoryOther,
}

// AllCategories returns the allowed categories in their canonical order.
// The returned slice is a fresh copy.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories[:])
	return out
}

// IsValid reports whether c is one of the allowed categories.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts s to a Category. Matching is exact; "coding error"
// is not the same category as "Coding Error".
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
