// Package category defines the closed set of material categories.
package category

import (
	"fmt"
	"strings"
)

// Category is a material subject area.
type Category string

// Category values.
const (
	Science     Category = "science"
	Technology  Category = "technology"
	Engineering Category = "engineering"
	Arts        Category = "arts"
	Mathematics Category = "mathematics"
)

// All returns every valid category.
func All() []Category {
	return []Category{Science, Technology, Engineering, Arts, Mathematics}
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case Science, Technology, Engineering, Arts, Mathematics:
		return true
	}
	return false
}

// String returns the lowercase category code.
func (c Category) String() string { return string(c) }

// Parse converts a category code (any case) into a Category.
func Parse(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
