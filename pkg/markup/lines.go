package markup

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/tikzdoc/pkg/errors"
)

// IndentUnit is written once per indentation level when displaying lines.
const IndentUnit = "\t"

// Line is a single rendered line with its indentation level.
type Line struct {
	Indent int
	Text   string
}

// String returns the line prefixed with its indentation, without a
// trailing newline.
func (l Line) String() string {
	return strings.Repeat(IndentUnit, l.Indent) + l.Text
}

// Lines is an ordered, indentation-tagged line buffer.
type Lines []Line

// Of builds a buffer of top-level lines (indentation 0).
func Of(texts ...string) Lines {
	lines := make(Lines, len(texts))
	for i, t := range texts {
		lines[i] = Line{Text: t}
	}
	return lines
}

// Append returns the buffer extended by top-level lines. Like the built-in
// append, the result may share storage with the receiver.
func (ls Lines) Append(texts ...string) Lines {
	for _, t := range texts {
		ls = append(ls, Line{Text: t})
	}
	return ls
}

// Concat returns the buffer extended by other, keeping other's indentation.
func (ls Lines) Concat(other Lines) Lines {
	return append(ls, other...)
}

// Indented returns a copy of the buffer with every line's indentation raised
// by n. The receiver is left untouched. Negative n is treated as zero.
func (ls Lines) Indented(n int) Lines {
	if n < 0 {
		n = 0
	}
	out := make(Lines, len(ls))
	for i, l := range ls {
		out[i] = Line{Indent: l.Indent + n, Text: l.Text}
	}
	return out
}

// Texts returns the line contents without indentation.
func (ls Lines) Texts() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Text
	}
	return out
}

// String displays the buffer: one line per entry, indented with
// [IndentUnit] and terminated by a newline.
func (ls Lines) String() string {
	var sb strings.Builder
	for _, l := range ls {
		writeLine(&sb, l)
	}
	return sb.String()
}

// WriteTo writes the displayed buffer to w. A failing writer is reported as
// [errors.ErrCodeFormatting].
func (ls Lines) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, l := range ls {
		writeLine(bw, l)
	}
	if err := bw.Flush(); err != nil {
		return cw.n, errors.Wrap(errors.ErrCodeFormatting, err, "write %d lines", len(ls))
	}
	return cw.n, nil
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

// writeLine ignores write errors; bufio.Writer keeps the first one for Flush
// and strings.Builder never fails.
func writeLine(w stringWriter, l Line) {
	for range l.Indent {
		_, _ = w.WriteString(IndentUnit)
	}
	_, _ = w.WriteString(l.Text)
	_, _ = w.WriteString("\n")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
