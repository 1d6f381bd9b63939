// Package prompt reads validated answers from an interactive terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// ErrInputClosed is returned once the input stream has nothing left to read.
var ErrInputClosed = errors.New("input closed")

const (
	msgInvalidYesNo  = "Invalid input! Please enter 'y' or 'n'."
	msgInvalidNumber = "Invalid input! Please enter a whole number."
)

// Collector asks questions on w and reads line-oriented answers from r.
// Invalid answers are reported and the question is asked again.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
	red *color.Color
}

// NewCollector creates a Collector. The reader and writer are normally
// os.Stdin and os.Stdout.
func NewCollector(r io.Reader, w io.Writer) *Collector {
	return &Collector{
		in:  bufio.NewReader(r),
		out: w,
		red: color.New(color.FgRed),
	}
}

// AskYesNo prints prompt and returns true for "y" and false for "n", ignoring
// case and surrounding whitespace.
func (c *Collector) AskYesNo(prompt string) (bool, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		if err := c.Fail(msgInvalidYesNo); err != nil {
			return false, err
		}
	}
}

// AskLength asks for a password length of at least minLength. A positive
// maxLength also bounds it from above; zero leaves it unbounded.
func (c *Collector) AskLength(minLength, maxLength int) (int, error) {
	prompt := fmt.Sprintf("Enter password length (minimum %d): ", minLength)
	if maxLength > 0 {
		prompt = fmt.Sprintf("Enter password length (minimum %d, maximum %d): ", minLength, maxLength)
	}

	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}

		// Lengths are 32-bit; anything wider is not a usable number.
		parsed, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		length := int(parsed)

		var msg string
		switch {
		case err != nil:
			msg = msgInvalidNumber
		case length < minLength:
			msg = fmt.Sprintf("Error: Password length must be at least %d to fit your choices!", minLength)
		case maxLength > 0 && length > maxLength:
			msg = MsgTooLong(maxLength)
		default:
			return length, nil
		}
		if err := c.Fail(msg); err != nil {
			return 0, err
		}
	}
}

// readLine prints prompt without a newline and returns the next line of input.
// A final line without a trailing newline is still returned.
func (c *Collector) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", errors.Wrap(err, "writing prompt")
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", errors.WithStack(ErrInputClosed)
		}
		return "", errors.Wrap(err, "reading answer")
	}
	return line, nil
}

// Fail reports msg as an error line before the question is asked again.
func (c *Collector) Fail(msg string) error {
	if _, err := c.red.Fprintln(c.out, msg); err != nil {
		return errors.Wrap(err, "writing error message")
	}
	return nil
}

// MsgTooLong is the message for a length above maxLength.
func MsgTooLong(maxLength int) string {
	return fmt.Sprintf("Error: Password length must be at most %d.", maxLength)
}
