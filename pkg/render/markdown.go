package render

import (
	"strings"
	"unicode/utf8"

	"github.com/ajxudir/licenseforge/pkg/records"
)

const (
	// MarkdownTitle is the level-1 header of the document.
	MarkdownTitle = "Third party licenses"
	// MarkdownAttribution is the italic paragraph below the title.
	MarkdownAttribution = "*This software stands on the shoulders of the following giants:*"

	titleUnderline   = "="
	sectionUnderline = "-"
	lineEnding       = "\n"
)

// Markdown renders the records as the third party licenses document.
//
// Each record is a setext level-2 header inside a one-level blockquote; the
// license body sits one level deeper. The license body is, in order of
// preference, the license file text, a link to the license URL, a link to
// the SPDX page, or the license type verbatim.
//
// Parameters:
//   - recs: Sorted records
//
// Returns:
//   - string: The UTF-8 document
func Markdown(recs []records.Record) string {
	var md mdWriter

	md.header(MarkdownTitle, titleUnderline, 0)
	md.paragraph(MarkdownAttribution, 0)
	md.line("", 0)

	for _, rec := range recs {
		md.header(rec.Name+" ["+rec.Version+"]", sectionUnderline, 1)

		if rec.Homepage != nil && *rec.Homepage != "" {
			md.paragraph("Homepage: <"+*rec.Homepage+">", 1)
		}
		if rec.Authors != nil && *rec.Authors != "" {
			md.paragraph("Authors: "+*rec.Authors, 1)
		}

		md.line("License:", 1)
		if rec.LicenseOriginal != nil {
			md.block(*rec.LicenseOriginal, 2)
		} else {
			md.line(Classify(rec.LicenseType).Markdown(), 2)
		}

		md.line("", 1)
		md.line("", 0)
	}

	return md.String()
}

// mdWriter accumulates blockquote-indented Markdown lines.
type mdWriter struct {
	sb strings.Builder
}

// line writes text prefixed with depth ">" characters. A space separates
// prefix and text only when both are present.
func (w *mdWriter) line(text string, depth int) {
	if depth > 0 {
		w.sb.WriteString(strings.Repeat(">", depth))
		if text != "" {
			w.sb.WriteByte(' ')
		}
	}
	w.sb.WriteString(text)
	w.sb.WriteString(lineEnding)
}

// header writes a setext header: the text, an underline of the same
// character length, then a blank line.
func (w *mdWriter) header(text, underline string, depth int) {
	w.line(text, depth)
	w.line(strings.Repeat(underline, utf8.RuneCountInString(text)), depth)
	w.line("", depth)
}

func (w *mdWriter) paragraph(text string, depth int) {
	w.line(text, depth)
	w.line("", depth)
}

// block writes multi-line text, one quoted line per input line.
func (w *mdWriter) block(text string, depth int) {
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		w.line(l, depth)
	}
}

func (w *mdWriter) String() string {
	return w.sb.String()
}
