// Package render serializes license records to the JSON and Markdown documents.
//
// Both renderers are pure functions of the record list, so they can run
// concurrently on the same slice.
package render

import (
	"net/url"
	"strings"
)

// SPDXBaseURL is the prefix of the SPDX license pages linked for license identifiers.
const SPDXBaseURL = "https://spdx.org/licenses/"

// ReferenceKind tells how a license type is rendered when no license file was found.
type ReferenceKind int

const (
	// ReferencePlainText renders the license type verbatim. Classify never
	// returns it; it is the zero value of a Reference.
	ReferencePlainText ReferenceKind = iota
	// ReferenceDirectURL renders the license type as an autolink.
	ReferenceDirectURL
	// ReferenceSPDX renders a link to the SPDX page of the identifier.
	ReferenceSPDX
)

// Reference is the classified form of a record's LicenseType.
//
// Fields:
//   - Kind: How the reference is rendered
//   - Text: The original license type
//   - URL: Link target; empty for ReferencePlainText
type Reference struct {
	Kind ReferenceKind
	Text string
	URL  string
}

// Classify decides how a license type is linked.
//
// It performs the following operations:
//   - Step 1: An absolute http(s) URL is a direct link
//   - Step 2: Anything else links to the composed SPDX page URL
//
// The composed SPDX URL always starts with SPDXBaseURL, so it is used as is
// even when the license type holds characters a strict URL parser rejects.
//
// Parameters:
//   - licenseType: The license field of the report entry
//
// Returns:
//   - Reference: The classification
func Classify(licenseType string) Reference {
	if IsHTTPURL(licenseType) {
		return Reference{Kind: ReferenceDirectURL, Text: licenseType, URL: licenseType}
	}

	return Reference{Kind: ReferenceSPDX, Text: licenseType, URL: SPDXBaseURL + licenseType + ".html"}
}

// Markdown returns the inline Markdown for the reference.
func (r Reference) Markdown() string {
	switch r.Kind {
	case ReferenceDirectURL:
		return "<" + r.URL + ">"
	case ReferenceSPDX:
		return "[" + r.Text + "](" + r.URL + ")"
	default:
		return r.Text
	}
}

// IsHTTPURL reports whether s is an absolute URL with an http or https scheme and a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
