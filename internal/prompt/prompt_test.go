package prompt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestCollector(input string) (*Collector, *bytes.Buffer) {
	var out bytes.Buffer
	return NewCollector(strings.NewReader(input), &out), &out
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      bool
		reprompts int
	}{
		{name: "upper case yes", input: "Y\n", want: true},
		{name: "padded no", input: " n \n", want: false},
		{name: "yes word reprompts", input: "yes\ny\n", want: true, reprompts: 1},
		{name: "empty reprompts", input: "\n\nn\n", want: false, reprompts: 2},
		{name: "invalid utf8 reprompts", input: "\xff\xfe\nY\n", want: true, reprompts: 1},
		{name: "windows line ending", input: "y\r\n", want: true},
		{name: "no trailing newline", input: "n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCollector(tt.input)

			got, err := c.AskYesNo("Include numbers? (y/n): ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reprompts, strings.Count(out.String(), msgInvalidYesNo))
			assert.Equal(t, tt.reprompts+1, strings.Count(out.String(), "Include numbers? (y/n): "))
		})
	}
}

func TestAskYesNoInputClosed(t *testing.T) {
	c, _ := newTestCollector("maybe\n")

	_, err := c.AskYesNo("Include numbers? (y/n): ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputClosed))
}

func TestAskLength(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		min, max  int
		want      int
		wantInOut []string
	}{
		{
			name:  "valid",
			input: "5\n",
			min:   3,
			want:  5,
		},
		{
			name:      "not a number",
			input:     "abc\n5\n",
			min:       3,
			want:      5,
			wantInOut: []string{msgInvalidNumber},
		},
		{
			name:      "below minimum",
			input:     "2\n5\n",
			min:       3,
			want:      5,
			wantInOut: []string{"Error: Password length must be at least 3 to fit your choices!"},
		},
		{
			name:  "equal to minimum",
			input: " 3 \n",
			min:   3,
			want:  3,
		},
		{
			name:      "fraction",
			input:     "4.5\n4\n",
			min:       1,
			want:      4,
			wantInOut: []string{msgInvalidNumber},
		},
		{
			name:  "large value accepted when unbounded",
			input: "100000\n",
			min:   1,
			want:  100000,
		},
		{
			name:      "above maximum",
			input:     "11\n10\n",
			min:       1,
			max:       10,
			want:      10,
			wantInOut: []string{"maximum 10", "Error: Password length must be at most 10."},
		},
		{
			name:      "wider than 32 bits",
			input:     "9223372036854775807\n2147483648\n5\n",
			min:       1,
			want:      5,
			wantInOut: []string{msgInvalidNumber + "\n" + "Enter password length (minimum 1): " + msgInvalidNumber},
		},
		{
			name:  "largest 32-bit value",
			input: "2147483647\n",
			min:   1,
			want:  2147483647,
		},
		{
			name:      "negative",
			input:     "-4\n1\n",
			min:       1,
			want:      1,
			wantInOut: []string{"at least 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCollector(tt.input)

			got, err := c.AskLength(tt.min, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, s := range tt.wantInOut {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestAskLengthPrompt(t *testing.T) {
	c, out := newTestCollector("4\n")

	_, err := c.AskLength(4, 0)
	require.NoError(t, err)
	assert.Equal(t, "Enter password length (minimum 4): ", out.String())
}

func TestAskLengthInputClosed(t *testing.T) {
	c, _ := newTestCollector("")

	_, err := c.AskLength(1, 0)
	assert.True(t, errors.Is(err, ErrInputClosed))
}

// brokenWriter fails every write that contains failOn.
type brokenWriter struct {
	failOn string
}

func (w brokenWriter) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.failOn) {
		return 0, io.ErrClosedPipe
	}
	return len(p), nil
}

func TestErrorLineWriteFailure(t *testing.T) {
	c := NewCollector(strings.NewReader("maybe\ny\n"), brokenWriter{failOn: msgInvalidYesNo})
	_, err := c.AskYesNo("Include numbers? (y/n): ")
	assert.True(t, errors.Is(err, io.ErrClosedPipe))

	c = NewCollector(strings.NewReader("abc\n5\n"), brokenWriter{failOn: msgInvalidNumber})
	_, err = c.AskLength(1, 0)
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}
