package rewriter

import (
	"bytes"
	"slices"
	"strings"
)

// LineBuffer is a file held as lines, each keeping its own terminator so the
// file is reproduced byte for byte when nothing is inserted.
type LineBuffer struct {
	lines []string
	eol   string
}

// NewLineBuffer splits data into lines.
func NewLineBuffer(data []byte) *LineBuffer {
	buf := &LineBuffer{eol: "\n"}
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			buf.lines = append(buf.lines, string(data))
			break
		}
		buf.lines = append(buf.lines, string(data[:i+1]))
		data = data[i+1:]
	}
	for _, l := range buf.lines {
		if strings.HasSuffix(l, "\n") {
			if strings.HasSuffix(l, "\r\n") {
				buf.eol = "\r\n"
			}
			break
		}
	}
	return buf
}

// Len returns the number of lines.
func (b *LineBuffer) Len() int {
	return len(b.lines)
}

// Line returns the 1-based line n without its terminator.
func (b *LineBuffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return strings.TrimRight(b.lines[n-1], "\r\n")
}

// EOL is the line terminator used for inserted lines.
func (b *LineBuffer) EOL() string {
	return b.eol
}

// insertAt inserts text lines before the 0-based index. Each line gets the
// buffer's terminator.
func (b *LineBuffer) insertAt(idx int, text ...string) {
	terminated := make([]string, len(text))
	for i, t := range text {
		terminated[i] = t + b.eol
	}
	b.lines = slices.Insert(b.lines, idx, terminated...)
}

// Bytes joins the lines back into file content.
func (b *LineBuffer) Bytes() []byte {
	var out bytes.Buffer
	for _, l := range b.lines {
		out.WriteString(l)
	}
	return out.Bytes()
}

// indentOf returns the leading blank prefix of a line.
func indentOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t\v\f")
	return line[:len(line)-len(trimmed)]
}
