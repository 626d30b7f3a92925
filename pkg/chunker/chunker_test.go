package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/entities"
	"docchat/pkg/apperr"
	"docchat/pkg/parser"
)

func TestSplit_EmptyInput(t *testing.T) {
	c := New(100, 10)

	_, err := c.Split(nil)
	assert.ErrorIs(t, err, apperr.ErrEmptyInput)

	_, err = c.Split([]parser.Page{{Number: 1, Text: "  \n \n\t\n"}})
	assert.ErrorIs(t, err, apperr.ErrEmptyInput)
}

func TestSplit_SingleShortPage(t *testing.T) {
	c := New(100, 10)

	chunks, err := c.Split([]parser.Page{{Number: 1, Text: "hello world\n"}})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].Page)
}

func TestSplit_StripsNewlines(t *testing.T) {
	c := New(1000, 0)

	chunks, err := c.Split([]parser.Page{{Number: 1, Text: "line one\nline two\nline three"}})
	require.NoError(t, err)
	for _, ch := range chunks {
		assert.NotContains(t, ch.Text, "\n")
	}
}

func TestSplit_RespectsSizeBound(t *testing.T) {
	c := New(50, 10)

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("some words on a line\n")
	}
	chunks, err := c.Split([]parser.Page{{Number: 1, Text: sb.String()}})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for i, ch := range chunks {
		assert.LessOrEqualf(t, len([]rune(ch.Text)), 50, "chunk %d too long", i)
	}
}

func TestSplit_ExactOverlap(t *testing.T) {
	const size, overlap = 40, 8
	c := New(size, overlap)

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("abcdefghij\n")
	}
	chunks, err := c.Split([]parser.Page{{Number: 1, Text: sb.String()}})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		next := []rune(chunks[i].Text)
		if len(prev) <= overlap {
			continue
		}
		tail := string(prev[len(prev)-overlap:])
		require.GreaterOrEqual(t, len(next), overlap)
		assert.Equalf(t, tail, string(next[:overlap]), "chunks %d/%d overlap mismatch", i-1, i)
	}
}

func TestSplit_HardSplitsOversizeSegment(t *testing.T) {
	c := New(20, 5)

	long := strings.Repeat("x", 95)
	chunks, err := c.Split([]parser.Page{{Number: 1, Text: long}})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch.Text)), 20)
	}
	// nothing lost: stitched-back content covers the original
	assert.Contains(t, strings.Join(chunkTexts(chunks), ""), strings.Repeat("x", 20))
}

func TestSplit_TracksSourcePages(t *testing.T) {
	c := New(100, 0)

	// first page fills one chunk exactly, so the next chunk starts fresh
	// with page-2 content
	chunks, err := c.Split([]parser.Page{
		{Number: 1, Text: strings.Repeat("0123456789\n", 10)},
		{Number: 2, Text: "second page text\n"},
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 2, chunks[1].Page)
}

func TestNew_ClampsBadOverlap(t *testing.T) {
	c := New(10, 50)
	chunks, err := c.Split([]parser.Page{{Number: 1, Text: "abcdefghijklmnop"}})
	require.NoError(t, err)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch.Text)), 10)
	}
}

func chunkTexts(cs []entities.Chunk) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}
