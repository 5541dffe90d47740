package eol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/eol"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want eol.LineEnding
	}{
		{name: "lf", text: "a\nb\n", want: eol.LF},
		{name: "crlf", text: "a\r\nb\r\n", want: eol.CRLF},
		{name: "cr", text: "a\rb\r", want: eol.CR},
		{name: "crlf majority", text: "a\r\nb\r\nc\n", want: eol.CRLF},
		{name: "lf majority", text: "a\nb\nc\r\n", want: eol.LF},
		{name: "cr majority", text: "a\rb\rc\n", want: eol.CR},
		{name: "tie crlf lf", text: "a\r\nb\n", want: eol.CRLF},
		{name: "tie lf cr", text: "a\nb\r", want: eol.LF},
		{name: "tie crlf cr", text: "a\rb\r\n", want: eol.CRLF},
		{name: "three-way tie", text: "a\rb\nc\r\n", want: eol.CRLF},
		{name: "cr then lf is crlf", text: "\r\n", want: eol.CRLF},
		{name: "lf then cr is two", text: "\n\r", want: eol.LF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := eol.Detect(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_NoLineBreaks(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "class A {}"} {
		_, err := eol.Detect(text)
		require.ErrorIs(t, err, eol.ErrNoLineBreaks)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	counts := eol.Count("a\r\nb\nc\rd\r\n")
	assert.Equal(t, eol.Counts{CRLF: 2, LF: 1, CR: 1}, counts)
	assert.Equal(t, 4, counts.Total())
	assert.True(t, counts.Mixed())
	assert.False(t, eol.Count("a\nb\n").Mixed())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := "a\r\nb\nc\rd"
	assert.Equal(t, "a\nb\nc\nd", eol.Normalize(in, eol.LF))
	assert.Equal(t, "a\r\nb\r\nc\r\nd", eol.Normalize(in, eol.CRLF))
	assert.Equal(t, "a\rb\rc\rd", eol.Normalize(in, eol.CR))
	assert.Equal(t, "plain", eol.Normalize("plain", eol.CRLF))
}

func TestParseAndNames(t *testing.T) {
	t.Parallel()

	for _, le := range eol.All {
		parsed, err := eol.Parse(le.String())
		require.NoError(t, err)
		assert.Equal(t, le, parsed)
	}

	_, err := eol.Parse("unix")
	require.Error(t, err)

	assert.Equal(t, `CRLF (\r\n)`, eol.CRLF.Describe())
	assert.Equal(t, "\r", eol.CR.Raw())
}

func TestBreakHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, eol.FirstBreak("ab\r\ncd\n"))
	assert.Equal(t, 7, eol.LastBreak("ab\r\ncd\nef"))
	assert.Equal(t, -1, eol.FirstBreak("abc"))
	assert.Equal(t, -1, eol.LastBreak("abc"))
	assert.True(t, eol.HasBreak("a\rb"))
}

func FuzzDetectNormalize(f *testing.F) {
	f.Add("a\nb\r\nc\r")
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		for _, le := range eol.All {
			out := eol.Normalize(text, le)
			counts := eol.Count(out)
			if counts.Total() == 0 {
				continue
			}
			got, err := eol.Detect(out)
			if err != nil {
				t.Fatalf("detect after normalize: %v", err)
			}
			if got != le {
				t.Fatalf("normalize to %s detected %s", le, got)
			}
		}
	})
}
