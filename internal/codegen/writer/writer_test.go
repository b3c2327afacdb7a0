package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_BasicWriting(t *testing.T) {
	// Test: Basic write operations
	w := NewWriter("\t")

	w.Write("hello")
	w.Write(" world")

	assert.Equal(t, "hello world", w.String())
	assert.Equal(t, []byte("hello world"), w.Bytes())
}

func TestWriter_Indentation(t *testing.T) {
	// Test: Indentation applies per line, empty lines carry no indent
	w := NewWriter("    ")

	w.WriteLine("public class A {")
	w.Indent()
	w.WriteLine("private long a;")
	w.WriteLine("")
	w.WriteLine("public long getA() { return a; }")
	w.Dedent()
	w.WriteLine("}")

	expected := "public class A {\n    private long a;\n\n    public long getA() { return a; }\n}\n"
	assert.Equal(t, expected, w.String())
}

func TestWriter_BlankLine(t *testing.T) {
	// Test: BlankLine never stacks blank lines and never opens the output
	w := NewWriter("\t")

	w.BlankLine()
	w.WriteLine("line1")
	w.BlankLine()
	w.WriteLine("line2")
	w.BlankLine()
	w.BlankLine()
	w.WriteLine("line3")

	lines := strings.Split(w.String(), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"line1", "", "line2", "", "line3", ""}, lines)

	// Test: a partial line is terminated first
	w = NewWriter("\t")
	w.Write("partial")
	w.BlankLine()
	assert.Equal(t, "partial\n\n", w.String())
}

func TestWriter_WriteBlock(t *testing.T) {
	w := NewWriter("  ")

	w.WriteBlock("exports.A = {", "};", func() {
		w.WriteLine("name: 'A',")
	})

	assert.Equal(t, "exports.A = {\n  name: 'A',\n};\n", w.String())
}

func TestWriter_WriteSeparated(t *testing.T) {
	// Test: every line but the last gets the separator
	w := NewWriter("  ")
	w.WriteSeparated([]string{"a: 'int'", "b: 'string'", "c: 'bool'"}, ",")
	assert.Equal(t, "a: 'int',\nb: 'string',\nc: 'bool'\n", w.String())

	w = NewWriter("  ")
	w.WriteSeparated(nil, ",")
	assert.Equal(t, "", w.String())
}

func TestWriter_Comments(t *testing.T) {
	w := NewWriter("\t")

	w.WriteComment("Single line comment")
	w.WriteMultilineComment([]string{"Line 1", "Line 2"})
	w.WriteComment("")

	expected := "// Single line comment\n// Line 1\n// Line 2\n//\n"
	assert.Equal(t, expected, w.String())
}

func TestWriter_WriteFormatted(t *testing.T) {
	w := NewWriter("\t")

	w.WriteLinef("var %s = %d", "count", 42)
	w.Indent()
	w.WriteLines("a", "b")
	w.Writef("// %s: %v", "value", true)
	w.Newline()

	assert.Equal(t, "var count = 42\n\ta\n\tb\n\t// value: true\n", w.String())
}

func TestWriter_IndentDedentBounds(t *testing.T) {
	// Test: Dedent doesn't go below zero
	w := NewWriter("\t")

	w.Dedent()
	w.WriteLine("a")
	w.Indent()
	w.WriteLine("b")
	w.Dedent()
	w.WriteLine("c")

	assert.Equal(t, "a\n\tb\nc\n", w.String())
}
