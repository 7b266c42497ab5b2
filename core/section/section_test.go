package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sep = "----"

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"a", "b"}, Lines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, Lines("a\nb"))
	assert.Equal(t, []string{"a", "", "b"}, Lines("a\n\nb\n"))
	assert.Equal(t, []string{""}, Lines("\n"))
}

func TestSplit(t *testing.T) {
	testCases := []struct {
		name          string
		text          string
		includeHeader bool
		expected      [][]string
	}{
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
		{
			name:     "no separator",
			text:     "a\nb\n",
			expected: nil,
		},
		{
			name:     "single separator without trailing content",
			text:     "a\n----\n",
			expected: nil,
		},
		{
			name:     "single separator with trailing content",
			text:     "----\nx\ny\n",
			expected: [][]string{{"x", "y"}},
		},
		{
			name:     "two separators",
			text:     "----\nx\n----\n",
			expected: [][]string{{"x"}},
		},
		{
			name:     "content before first separator is not captured",
			text:     "junk\n----\nx\n----\ny\n----\n",
			expected: [][]string{{"x"}, {"y"}},
		},
		{
			name:     "adjacent separators yield an empty run",
			text:     "----\n----\nx\n----\n",
			expected: [][]string{nil, {"x"}},
		},
		{
			name:          "header inclusion keeps the preceding line",
			text:          "Index: a\n----\n+1\nIndex: b\n----\n+2\n",
			includeHeader: true,
			expected: [][]string{
				{"Index: a", "----", "+1", "Index: b"},
				{"Index: b", "----", "+2"},
			},
		},
		{
			name:          "header inclusion with separator on first line",
			text:          "----\nx\n",
			includeHeader: true,
			expected:      [][]string{{"", "----", "x"}},
		},
		{
			name:          "header inclusion yields a partial final capture",
			text:          "a\n----\n",
			includeHeader: true,
			expected:      [][]string{{"a", "----"}},
		},
		{
			name:     "CRLF separators",
			text:     "----\r\nx\r\n----\r\n",
			expected: [][]string{{"x\r"}},
		},
		{
			name:     "separator must match the whole line",
			text:     "----\n-----\n ----\n----\n",
			expected: [][]string{{"-----", " ----"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Split(tc.text, sep, tc.includeHeader))
		})
	}
}

func TestSplit_HeaderInclusionOnlyPrefixes(t *testing.T) {
	inputs := []string{
		"Index: a\n----\n+1\n-2\nIndex: b\n----\n+3\n",
		"----\na\n----\nb\nc\n----\nd\n",
		"x\n----\n\n\n----\ny\n",
		"----\n----\n----\nz\n",
	}

	for _, in := range inputs {
		plain := Split(in, sep, false)
		headed := Split(in, sep, true)
		require.Len(t, headed, len(plain), "input %q", in)

		for i := range plain {
			require.Len(t, headed[i], len(plain[i])+HeaderLines)
			assert.Equal(t, sep, headed[i][1], "second line is the separator")
			assert.Equal(t, plain[i], nilIfEmpty(Body(headed[i])), "bodies are identical")
		}
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	inputs := []string{
		"----\na\nb\n----\nc\n----\n",
		"----\nr1 | alice\n\nfix\n----\nr2 | bob\n",
		"----\n\n\n----\n",
	}

	for _, in := range inputs {
		var rebuilt []string
		for _, s := range Split(in, sep, false) {
			rebuilt = append(rebuilt, s...)
		}

		var expected []string
		for _, line := range Lines(in) {
			if line != sep {
				expected = append(expected, line)
			}
		}
		assert.Equal(t, strings.Join(expected, "\n"), strings.Join(rebuilt, "\n"), "input %q", in)
	}
}

func TestBody(t *testing.T) {
	assert.Nil(t, Body([]string{"only"}))
	assert.Empty(t, Body([]string{"Index: a", "----"}))
	assert.Equal(t, []string{"x"}, Body([]string{"Index: a", "----", "x"}))
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
