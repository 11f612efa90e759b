package types

import "fmt"

// DependencyCategory names one of the five fixed dependency lists of a business process
type DependencyCategory string

const (
	DependencyPeople         DependencyCategory = "people"
	DependencyITApplications DependencyCategory = "it_applications"
	DependencyDevices        DependencyCategory = "devices"
	DependencyFacilities     DependencyCategory = "facilities"
	DependencySuppliers      DependencyCategory = "suppliers"
)

// AllDependencyCategories returns the categories in canonical order
func AllDependencyCategories() []DependencyCategory {
	return []DependencyCategory{
		DependencyPeople,
		DependencyITApplications,
		DependencyDevices,
		DependencyFacilities,
		DependencySuppliers,
	}
}

// IsValid checks if the category is valid
func (c DependencyCategory) IsValid() bool {
	switch c {
	case DependencyPeople, DependencyITApplications, DependencyDevices, DependencyFacilities, DependencySuppliers:
		return true
	default:
		return false
	}
}

// Label returns the display label of the category
func (c DependencyCategory) Label() string {
	switch c {
	case DependencyPeople:
		return "People"
	case DependencyITApplications:
		return "IT Applications"
	case DependencyDevices:
		return "Devices"
	case DependencyFacilities:
		return "Facility/Location"
	case DependencySuppliers:
		return "Suppliers"
	default:
		return string(c)
	}
}

func (c DependencyCategory) String() string {
	return string(c)
}

// ParseDependencyCategory parses a string into a DependencyCategory
func ParseDependencyCategory(s string) (DependencyCategory, error) {
	c := DependencyCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid dependency category: %s", s)
	}
	return c, nil
}
