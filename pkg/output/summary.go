package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// LicenseCount is the number of records carrying one license type.
type LicenseCount struct {
	License  string
	Packages int
}

// Summary describes a finished run.
//
// Fields:
//   - Records: Number of package records written
//   - WithLicenseText: Records whose license file was found
//   - Licenses: Per-license record counts, most used first
//   - Files: Output files written, in completion order
type Summary struct {
	Records         int
	WithLicenseText int
	Licenses        []LicenseCount
	Files           []string
}

// CountLicenses tallies license types and orders them by count, then name.
//
// Parameters:
//   - licenseTypes: One license type per record
//
// Returns:
//   - []LicenseCount: Non-nil list, most used license first
func CountLicenses(licenseTypes []string) []LicenseCount {
	index := make(map[string]int)
	counts := make([]LicenseCount, 0)
	for _, lt := range licenseTypes {
		i, ok := index[lt]
		if !ok {
			i = len(counts)
			index[lt] = i
			counts = append(counts, LicenseCount{License: lt})
		}
		counts[i].Packages++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Packages != counts[j].Packages {
			return counts[i].Packages > counts[j].Packages
		}
		return counts[i].License < counts[j].License
	})
	return counts
}

// WriteSummary prints the per-license table followed by a totals line.
//
// Example output:
//
//	LICENSE     PACKAGES
//	----------  --------
//	MIT               12
//	Apache-2.0         3
//
//	15 packages, 9 with license text
//
// Parameters:
//   - w: Destination writer
//   - s: Summary to print
func WriteSummary(w io.Writer, s *Summary) {
	table := NewTable().
		AddColumn("LICENSE").
		AddAlignedColumn("PACKAGES", AlignRight)

	rows := make([][]string, len(s.Licenses))
	for i, lc := range s.Licenses {
		rows[i] = []string{lc.License, strconv.Itoa(lc.Packages)}
	}
	table.Fprint(w, rows)

	_, _ = fmt.Fprintf(w, "\n%d packages, %d with license text\n", s.Records, s.WithLicenseText)
	for _, f := range s.Files {
		_, _ = fmt.Fprintf(w, "wrote %s\n", f)
	}
}
