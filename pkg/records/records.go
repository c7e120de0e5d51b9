// Package records flattens a license report into sorted per-version package records.
package records

import (
	"sort"
	"strings"

	"github.com/ajxudir/licenseforge/pkg/report"
	"golang.org/x/mod/semver"
)

// Record is the license information of one version of one package.
//
// Field order is the serialization order of the JSON document. Nil pointers
// are absent values and serialize as null.
type Record struct {
	Name            string  `json:"Name"`
	Version         string  `json:"Version"`
	Authors         *string `json:"Authors"`
	Homepage        *string `json:"Homepage"`
	LicenseType     string  `json:"LicenseType"`
	LicenseOriginal *string `json:"LicenseOriginal"`
}

// Resolver returns the license text stored in a package directory, or nil when there is none.
type Resolver interface {
	Resolve(packagePath string) (*string, error)
}

// Build turns the report into records sorted by name.
//
// It performs the following operations:
//   - Step 1: Walks groups, entries and versions in report order
//   - Step 2: Strips one leading "@" from the package name
//   - Step 3: Resolves the license text once per record from paths[i]
//   - Step 4: Sorts with Sort
//
// Parameters:
//   - r: Parsed license report
//   - resolver: License file resolver; the first error aborts the build
//
// Returns:
//   - []Record: Sorted records; an empty, non-nil slice for an empty report
//   - error: The first resolver error
func Build(r *report.Report, resolver Resolver) ([]Record, error) {
	result := make([]Record, 0, r.Len())

	for _, group := range r.Groups {
		for _, entry := range group.Entries {
			name := NormalizeName(entry.Name)
			for i, version := range entry.Versions {
				original, err := resolver.Resolve(entry.Paths[i])
				if err != nil {
					return nil, err
				}
				result = append(result, Record{
					Name:            name,
					Version:         version,
					Authors:         entry.Author,
					Homepage:        entry.Homepage,
					LicenseType:     entry.License,
					LicenseOriginal: original,
				})
			}
		}
	}

	Sort(result)
	return result, nil
}

// NormalizeName removes the scope marker: exactly one leading "@", nothing else.
func NormalizeName(name string) string {
	return strings.TrimPrefix(name, "@")
}

// Sort orders records by name (byte-wise). Records with the same name are
// ordered by semantic version; versions that are not semver follow the valid
// ones and keep their existing order.
func Sort(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Name != recs[j].Name {
			return recs[i].Name < recs[j].Name
		}
		vi, vj := canonical(recs[i].Version), canonical(recs[j].Version)
		validI, validJ := semver.IsValid(vi), semver.IsValid(vj)
		switch {
		case validI && validJ:
			return semver.Compare(vi, vj) < 0
		case validI:
			return true
		default:
			return false
		}
	})
}

// canonical adds the "v" prefix npm versions lack.
func canonical(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
