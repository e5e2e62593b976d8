package term

import (
	"bytes"
	"fmt"
	"io"
)

// Driver is the low-level terminal interface. Writes may be buffered until
// Flush is called.
type Driver interface {
	// WriteLine writes a line of text, which may contain SGR sequences,
	// followed by a newline. The cursor ends up at the start of the next line.
	WriteLine(text string) error
	// ClearLines moves the cursor up n lines, erasing every line it passes
	// and everything below the cursor. ClearLines(0) is a no-op.
	ClearLines(n int) error
	// MoveCursorUp moves the cursor up n lines to the leftmost column.
	MoveCursorUp(n int) error
	// Flush sends buffered output to the terminal.
	Flush() error
}

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// vtDriver is a Driver that writes VT100 sequences.
type vtDriver struct {
	file   io.Writer
	output bytes.Buffer
}

// NewDriver returns a Driver that writes VT100 sequences to the given
// io.Writer. All output between two Flush calls is written to the terminal at
// once, with the cursor hidden while it is written to minimize flickering.
func NewDriver(f io.Writer) Driver {
	return &vtDriver{file: f}
}

func (d *vtDriver) WriteLine(text string) error {
	d.output.WriteString(text)
	// Erase whatever was left on the rest of the line before moving on.
	d.output.WriteString("\033[K\n")
	return nil
}

func (d *vtDriver) MoveCursorUp(n int) error {
	if n > 0 {
		fmt.Fprintf(&d.output, "\033[%dA", n)
	}
	d.output.WriteString("\r")
	return nil
}

func (d *vtDriver) ClearLines(n int) error {
	if n <= 0 {
		return nil
	}
	d.MoveCursorUp(n)
	d.output.WriteString("\033[J")
	return nil
}

func (d *vtDriver) Flush() error {
	if d.output.Len() == 0 {
		return nil
	}
	defer d.output.Reset()
	_, err := io.WriteString(d.file, hideCursor+d.output.String()+showCursor)
	return err
}

// NewPlainDriver returns a Driver for output that is not a terminal, such as
// a pipe or a file. It writes lines with SGR sequences stripped and ignores
// cursor movements.
func NewPlainDriver(f io.Writer) Driver {
	return &plainDriver{file: f}
}

type plainDriver struct {
	file   io.Writer
	output bytes.Buffer
}

func (d *plainDriver) WriteLine(text string) error {
	d.output.WriteString(StripSGR(text))
	d.output.WriteByte('\n')
	return nil
}

func (d *plainDriver) ClearLines(int) error   { return nil }
func (d *plainDriver) MoveCursorUp(int) error { return nil }

func (d *plainDriver) Flush() error {
	if d.output.Len() == 0 {
		return nil
	}
	defer d.output.Reset()
	_, err := d.file.Write(d.output.Bytes())
	return err
}

// StripSGR removes SGR sequences (ESC [ ... m) from s.
func StripSGR(s string) string {
	var sb bytes.Buffer
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] == ';' || ('0' <= s[j] && s[j] <= '9')) {
				j++
			}
			if j < len(s) && s[j] == 'm' {
				i = j
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
