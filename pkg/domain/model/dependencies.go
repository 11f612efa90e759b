package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

var (
	ErrIndexOutOfRange = goerr.New("dependency index out of range")
	ErrInvalidCategory = goerr.New("invalid dependency category")
	ErrEmptyDependency = goerr.New("dependency value is empty")
)

// Dependencies is the fixed set of five dependency lists of a business process.
// Values are treated as immutable; every edit returns a new Dependencies.
type Dependencies struct {
	People         []string `json:"people"`
	ITApplications []string `json:"itApplications"`
	Devices        []string `json:"devices"`
	Facilities     []string `json:"facilities"`
	Suppliers      []string `json:"suppliers"`
}

// Normalize returns a copy where every list is non-nil and blank entries are removed
func (d Dependencies) Normalize() Dependencies {
	return Dependencies{
		People:         cleanList(d.People),
		ITApplications: cleanList(d.ITApplications),
		Devices:        cleanList(d.Devices),
		Facilities:     cleanList(d.Facilities),
		Suppliers:      cleanList(d.Suppliers),
	}
}

// Clone returns a deep copy with all lists non-nil
func (d Dependencies) Clone() Dependencies {
	return Dependencies{
		People:         copyList(d.People),
		ITApplications: copyList(d.ITApplications),
		Devices:        copyList(d.Devices),
		Facilities:     copyList(d.Facilities),
		Suppliers:      copyList(d.Suppliers),
	}
}

// Get returns a copy of the list for the category
func (d Dependencies) Get(category types.DependencyCategory) []string {
	return copyList(d.list(category))
}

// Each calls fn for every category in canonical order
func (d Dependencies) Each(fn func(category types.DependencyCategory, items []string)) {
	for _, c := range types.AllDependencyCategories() {
		fn(c, d.Get(c))
	}
}

// Count returns the total number of entries across all categories
func (d Dependencies) Count() int {
	return len(d.People) + len(d.ITApplications) + len(d.Devices) + len(d.Facilities) + len(d.Suppliers)
}

// IsEmpty reports whether every category is empty
func (d Dependencies) IsEmpty() bool {
	return d.Count() == 0
}

// ReplaceAt returns a copy with the item at index replaced by value
func (d Dependencies) ReplaceAt(category types.DependencyCategory, index int, value string) (Dependencies, error) {
	if !category.IsValid() {
		return d, goerr.Wrap(ErrInvalidCategory, "cannot replace dependency", goerr.V("category", category))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return d, goerr.Wrap(ErrEmptyDependency, "cannot replace dependency", goerr.V("category", category))
	}
	items := d.list(category)
	if index < 0 || index >= len(items) {
		return d, goerr.Wrap(ErrIndexOutOfRange, "cannot replace dependency",
			goerr.V("category", category), goerr.V("index", index), goerr.V("length", len(items)))
	}

	updated := copyList(items)
	updated[index] = value
	return d.with(category, updated), nil
}

// Append returns a copy with value appended to the category
func (d Dependencies) Append(category types.DependencyCategory, value string) (Dependencies, error) {
	if !category.IsValid() {
		return d, goerr.Wrap(ErrInvalidCategory, "cannot append dependency", goerr.V("category", category))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return d, goerr.Wrap(ErrEmptyDependency, "cannot append dependency", goerr.V("category", category))
	}

	updated := append(copyList(d.list(category)), value)
	return d.with(category, updated), nil
}

// RemoveAt returns a copy without the item at index
func (d Dependencies) RemoveAt(category types.DependencyCategory, index int) (Dependencies, error) {
	if !category.IsValid() {
		return d, goerr.Wrap(ErrInvalidCategory, "cannot remove dependency", goerr.V("category", category))
	}
	items := d.list(category)
	if index < 0 || index >= len(items) {
		return d, goerr.Wrap(ErrIndexOutOfRange, "cannot remove dependency",
			goerr.V("category", category), goerr.V("index", index), goerr.V("length", len(items)))
	}

	updated := make([]string, 0, len(items)-1)
	updated = append(updated, items[:index]...)
	updated = append(updated, items[index+1:]...)
	return d.with(category, updated), nil
}

func (d Dependencies) list(category types.DependencyCategory) []string {
	switch category {
	case types.DependencyPeople:
		return d.People
	case types.DependencyITApplications:
		return d.ITApplications
	case types.DependencyDevices:
		return d.Devices
	case types.DependencyFacilities:
		return d.Facilities
	case types.DependencySuppliers:
		return d.Suppliers
	default:
		return nil
	}
}

// with returns a deep copy with one category swapped for items
func (d Dependencies) with(category types.DependencyCategory, items []string) Dependencies {
	out := d.Clone()
	switch category {
	case types.DependencyPeople:
		out.People = items
	case types.DependencyITApplications:
		out.ITApplications = items
	case types.DependencyDevices:
		out.Devices = items
	case types.DependencyFacilities:
		out.Facilities = items
	case types.DependencySuppliers:
		out.Suppliers = items
	}
	return out
}

func copyList(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
