package render

import (
	"bytes"
	"encoding/json"

	"github.com/ajxudir/licenseforge/pkg/records"
)

// Document is the envelope of the JSON output.
type Document struct {
	Packages []records.Record `json:"Packages"`
}

// JSON renders the records as the licenses JSON document.
//
// It performs the following operations:
//   - Step 1: Wraps the records in {"Packages": [...]}, an empty list for no records
//   - Step 2: Encodes with one tab per nesting level and HTML escaping disabled
//   - Step 3: Writes U+2028 and U+2029 literally instead of as \u escapes
//   - Step 4: Ends the document with exactly one newline
//
// Parameters:
//   - recs: Sorted records
//
// Returns:
//   - []byte: The UTF-8 document
//   - error: Encoding error
func JSON(recs []records.Record) ([]byte, error) {
	doc := Document{Packages: recs}
	if doc.Packages == nil {
		doc.Packages = []records.Record{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}

	// Encode already terminates the document with a single newline.
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes that
// encoding/json always emits with the raw characters. Every backslash in
// encoder output starts a two-byte or \uXXXX escape, so escapes are walked
// pairwise and an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if rest := b[i+1:]; len(rest) >= 5 && rest[0] == 'u' && string(rest[1:4]) == "202" && (rest[4] == '8' || rest[4] == '9') {
			if rest[4] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
