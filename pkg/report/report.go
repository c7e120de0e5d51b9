// Package report parses the license report printed by `pnpm licenses list --json --long`.
//
// The report is a JSON object keyed by license type; each value is an array
// of package entries. Key order is significant (it fixes the traversal order
// of the record builder) so the document is decoded through an ordered map.
package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/iancoleman/orderedmap"
)

// EmptySentinel is printed by pnpm instead of JSON when no dependency carries a license.
const EmptySentinel = "No licenses in packages found"

// Entry is one package of a license group.
//
// Versions and Paths are index aligned: Paths[i] is the installation
// directory of Versions[i]. Author and Homepage are nil when absent.
type Entry struct {
	Name     string
	Versions []string
	Paths    []string
	Author   *string
	Homepage *string
	License  string
}

// Group holds every package reported under one license type.
type Group struct {
	License string
	Entries []Entry
}

// Report is the parsed license report, groups in document order.
type Report struct {
	Groups []Group
}

// Len returns the number of (package, version) pairs in the report.
func (r *Report) Len() int {
	n := 0
	for _, g := range r.Groups {
		for _, e := range g.Entries {
			n += len(e.Versions)
		}
	}
	return n
}

// rawEntry mirrors the JSON shape of an entry. Pointer fields let validation
// tell a missing key from an empty value. Unknown keys such as "description"
// are ignored.
type rawEntry struct {
	Name     *string          `json:"name"`
	Versions *[]string        `json:"versions"`
	Paths    *[]string        `json:"paths"`
	Author   *json.RawMessage `json:"author"`
	Homepage *json.RawMessage `json:"homepage"`
	License  *string          `json:"license"`
}

// Parse converts the license-listing command output into a Report.
//
// It performs the following operations:
//   - Step 1: Returns an empty report when the output starts with EmptySentinel
//   - Step 2: Decodes the document into an ordered map to keep license order
//   - Step 3: Decodes and validates every group and entry
//
// Parameters:
//   - output: Raw standard output of the license-listing command
//
// Returns:
//   - *Report: The parsed report; never nil on success
//   - error: *errors.ReportParseError when the output is not a valid report
func Parse(output []byte) (*Report, error) {
	if bytes.HasPrefix(output, []byte(EmptySentinel)) {
		return &Report{}, nil
	}

	if trimmed := bytes.TrimSpace(output); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &errors.ReportParseError{Index: -1, Reason: "output is not a JSON object"}
	}

	doc := orderedmap.New()
	if err := json.Unmarshal(output, doc); err != nil {
		return nil, &errors.ReportParseError{Index: -1, Reason: "output is not a JSON object", Err: err}
	}

	result := &Report{Groups: make([]Group, 0, len(doc.Keys()))}
	for _, license := range doc.Keys() {
		value, _ := doc.Get(license)
		group, err := parseGroup(license, value)
		if err != nil {
			return nil, err
		}
		result.Groups = append(result.Groups, group)
	}

	return result, nil
}

// parseGroup decodes one license group.
//
// The ordered map hands back nested objects as orderedmap values, so the
// group is re-encoded and decoded into typed entries.
func parseGroup(license string, value any) (Group, error) {
	if _, ok := value.([]any); !ok {
		return Group{}, &errors.ReportParseError{License: license, Index: -1, Reason: "license group is not an array"}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return Group{}, &errors.ReportParseError{License: license, Index: -1, Reason: "license group cannot be re-encoded", Err: err}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Group{}, &errors.ReportParseError{License: license, Index: -1, Reason: "license group is not an array", Err: err}
	}

	group := Group{License: license, Entries: make([]Entry, 0, len(raws))}
	for i, raw := range raws {
		entry, err := parseEntry(license, i, raw)
		if err != nil {
			return Group{}, err
		}
		group.Entries = append(group.Entries, entry)
	}

	return group, nil
}

func parseEntry(license string, index int, raw json.RawMessage) (Entry, error) {
	fail := func(field, reason string, cause error) error {
		return &errors.ReportParseError{License: license, Index: index, Field: field, Reason: reason, Err: cause}
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return Entry{}, fail("", "entry is not an object", nil)
	}

	var re rawEntry
	if err := json.Unmarshal(raw, &re); err != nil {
		return Entry{}, fail("", "entry has wrongly typed fields", err)
	}

	switch {
	case re.Name == nil:
		return Entry{}, fail("name", "missing", nil)
	case strings.TrimSpace(*re.Name) == "":
		return Entry{}, fail("name", "empty", nil)
	case re.License == nil:
		return Entry{}, fail("license", "missing", nil)
	case re.Versions == nil:
		return Entry{}, fail("versions", "missing", nil)
	case re.Paths == nil:
		return Entry{}, fail("paths", "missing", nil)
	case len(*re.Versions) != len(*re.Paths):
		return Entry{}, fail("paths", "versions and paths have different lengths", nil)
	}

	author, err := optionalString(re.Author)
	if err != nil {
		return Entry{}, fail("author", "must be a string or null", err)
	}
	homepage, err := optionalString(re.Homepage)
	if err != nil {
		return Entry{}, fail("homepage", "must be a string or null", err)
	}

	return Entry{
		Name:     *re.Name,
		Versions: *re.Versions,
		Paths:    *re.Paths,
		Author:   author,
		Homepage: homepage,
		License:  *re.License,
	}, nil
}

// optionalString decodes a string-or-null field. An empty string is kept as is.
func optionalString(raw *json.RawMessage) (*string, error) {
	if raw == nil || string(bytes.TrimSpace(*raw)) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(*raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
