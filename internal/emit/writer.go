// Package emit accumulates generated C/C++ source with indentation.
package emit

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "    "

// Writer collects lines of generated code. Each line is prefixed with the
// current indentation; blank lines are never indented.
type Writer struct {
	buf    bytes.Buffer
	temps  map[string]int
	indent int
}

// New returns an empty writer.
func New() *Writer {
	return &Writer{}
}

// Line writes s as one line at the current indentation. s is not
// interpreted as a format string.
func (w *Writer) Line(s string) {
	if s == "" {
		w.buf.WriteByte('\n')
		return
	}
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString(indentUnit)
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Linef formats and writes one line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Lines writes each element of lines.
func (w *Writer) Lines(lines ...string) {
	for _, l := range lines {
		w.Line(l)
	}
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Raw appends text verbatim, ignoring indentation.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}

// Indent increases the indentation by one level.
func (w *Writer) Indent() {
	w.indent++
}

// Dedent decreases the indentation by one level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Depth returns the current indentation level.
func (w *Writer) Depth() int {
	return w.indent
}

// Block writes open, the indented body and close.
func (w *Writer) Block(open string, body func(), close string) {
	w.Line(open)
	w.Indent()
	body()
	w.Dedent()
	w.Line(close)
}

// Brace writes "head {", the indented body and "}".
func (w *Writer) Brace(head string, body func()) {
	w.Block(head+" {", body, "}")
}

// IfElse writes an if/else pair. A nil otherwise omits the else branch.
func (w *Writer) IfElse(cond string, then, otherwise func()) {
	w.Line("if (" + cond + ") {")
	w.Indent()
	then()
	w.Dedent()
	if otherwise != nil {
		w.Line("} else {")
		w.Indent()
		otherwise()
		w.Dedent()
	}
	w.Line("}")
}

// Temp returns a fresh identifier starting with prefix, unique within this
// writer. The first request for a prefix returns the prefix itself.
func (w *Writer) Temp(prefix string) string {
	if w.temps == nil {
		w.temps = make(map[string]int)
	}
	n := w.temps[prefix]
	w.temps[prefix] = n + 1
	if n == 0 {
		return prefix
	}
	return prefix + strconv.Itoa(n)
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.buf.String()
}

// Bytes returns the accumulated text.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of accumulated bytes.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset discards the accumulated text and indentation.
func (w *Writer) Reset() {
	w.buf.Reset()
	w.indent = 0
	w.temps = nil
}

// QuoteList renders names as a comma separated list of C string literals.
func QuoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}
