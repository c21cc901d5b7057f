// internal/app/system/csvutil/teachers.go
package csvutil

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dalemusser/schooladmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schooladmin/internal/app/system/inputval"
)

// TeacherCSVRow is one normalized teacher row from an upload.
type TeacherCSVRow struct {
	Name       string
	ContactNo1 string
	ContactNo2 string
	Email      string
}

// RowError describes why one input line was rejected.
type RowError struct {
	Line    int
	Name    string
	Contact string
	Reason  string
}

// ParseOptions bounds a parse.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions returns the limits used by the teacher upload form.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// ParseResult holds every valid row and every rejected line.
type ParseResult struct {
	Rows   []TeacherCSVRow
	Errors []RowError
}

// HasErrors reports whether any line was rejected.
func (p ParseResult) HasErrors() bool { return len(p.Errors) > 0 }

// FormatErrorsHTML summarizes up to max rejected lines for the form banner.
func (p ParseResult) FormatErrorsHTML(max int) template.HTML {
	if !p.HasErrors() {
		return ""
	}
	var b strings.Builder
	b.WriteString("Upload rejected: one or more rows are invalid.<br>")
	b.WriteString("Each row needs a Name and a 10 or 11 digit Contact No 1. Contact No 2 and Email are optional.<br>")
	if max > len(p.Errors) {
		max = len(p.Errors)
	}
	for _, e := range p.Errors[:max] {
		name := e.Name
		if name == "" {
			name = "(missing)"
		}
		fmt.Fprintf(&b, "• line %d | %s | %s → %s<br>",
			e.Line,
			template.HTMLEscapeString(name),
			template.HTMLEscapeString(e.Contact),
			template.HTMLEscapeString(e.Reason))
	}
	if rest := len(p.Errors) - max; rest > 0 {
		fmt.Fprintf(&b, "…and %d more.<br>", rest)
	}
	return template.HTML(b.String())
}

// ParseTeacherCSV reads Name, Contact No 1, Contact No 2, Email rows.
// A header row is skipped when present, as is a UTF-8 BOM. Blank rows are
// ignored. Rows are checked the same way as the bulk-add form.
func ParseTeacherCSV(r io.Reader, opts ParseOptions) (ParseResult, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == string(utf8BOM) {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res ParseResult
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 && isTeacherHeader(rec) {
			continue
		}

		row := TeacherCSVRow{
			Name:       htmlsanitize.PlainText(cell(rec, 0)),
			ContactNo1: cell(rec, 1),
			ContactNo2: cell(rec, 2),
			Email:      cell(rec, 3),
		}
		if row == (TeacherCSVRow{}) {
			continue
		}
		if opts.MaxRows > 0 && len(res.Rows)+len(res.Errors) >= opts.MaxRows {
			return res, fmt.Errorf("too many rows: limit is %d", opts.MaxRows)
		}
		if reason := CheckTeacherRow(row); reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Name: row.Name, Contact: row.ContactNo1, Reason: reason})
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// CheckTeacherRow returns why row is unacceptable, or "".
func CheckTeacherRow(row TeacherCSVRow) string {
	switch {
	case row.Name == "":
		return "missing name"
	case row.ContactNo1 == "":
		return "missing contact number"
	case !inputval.IsContactNumber(row.ContactNo1):
		return "contact number must be 10 or 11 digits"
	case row.ContactNo2 != "" && !inputval.IsContactNumber(row.ContactNo2):
		return "second contact number must be 10 or 11 digits"
	case row.Email != "" && !inputval.IsValidEmail(row.Email):
		return "invalid email"
	}
	return ""
}

func isTeacherHeader(rec []string) bool {
	return len(rec) >= 2 &&
		strings.EqualFold(strings.TrimSpace(rec[0]), "name") &&
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(rec[1])), "contact")
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}
