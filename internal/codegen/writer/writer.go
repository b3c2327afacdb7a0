// Package writer builds generated source text line by line.
package writer

import (
	"fmt"
	"strings"
)

// Writer writes indented source text. Output depends only on the calls made,
// so the same call sequence always yields the same bytes.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a writer that indents with indentString
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline. An empty string yields an
// empty line with no indentation.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// WriteLines writes each string on its own line
func (w *Writer) WriteLines(lines ...string) {
	for _, line := range lines {
		w.WriteLine(line)
	}
}

// WriteSeparated writes lines, ending every line but the last with sep
func (w *Writer) WriteSeparated(lines []string, sep string) {
	for i, line := range lines {
		if i < len(lines)-1 {
			line += sep
		}
		w.WriteLine(line)
	}
}

// WriteRaw appends pre-rendered text as is, without indentation
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.needsIndent = strings.HasSuffix(s, "\n")
}

// Newline adds a newline character
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output is empty or already ends
// with one
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		if !strings.HasSuffix(w.sb.String(), "\n") {
			w.Newline()
		}
		w.Newline()
	}
}

// String returns the generated code as a string
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

// updatePrefix updates the line prefix based on current indentation
func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes content inside a block with proper indentation
// Example: WriteBlock("class A {", "}", func() { w.WriteLine("int a;") })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	if comment == "" {
		w.WriteLine("//")
		return
	}
	w.WriteLinef("// %s", comment)
}

// WriteMultilineComment writes one comment line per entry
func (w *Writer) WriteMultilineComment(lines []string) {
	for _, line := range lines {
		w.WriteComment(line)
	}
}
