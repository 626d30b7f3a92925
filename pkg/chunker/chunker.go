// Package chunker splits page text into bounded, overlapping segments.
package chunker

import (
	"strings"

	"docchat/entities"
	"docchat/pkg/apperr"
	"docchat/pkg/parser"
)

type Chunker struct {
	size    int // max chunk length in runes
	overlap int // trailing runes carried into the next chunk
}

func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &Chunker{size: size, overlap: overlap}
}

type candidate struct {
	text string
	page int
}

// Split packs newline-separated segments into chunks of at most size runes,
// carrying overlap runes of trailing context across chunk boundaries. Chunk
// text never contains newlines. Each chunk keeps the page its fresh content
// started on.
func (c *Chunker) Split(pages []parser.Page) ([]entities.Chunk, error) {
	var cands []candidate
	for _, p := range pages {
		for _, line := range strings.Split(p.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			cands = append(cands, candidate{text: line, page: p.Number})
		}
	}
	if len(cands) == 0 {
		return nil, apperr.ErrEmptyInput
	}

	var chunks []entities.Chunk
	cur := make([]rune, 0, c.size)
	curPage := cands[0].page
	fresh := false // cur holds content beyond the carried overlap

	flush := func(nextPage int) {
		chunks = append(chunks, entities.Chunk{Text: string(cur), Page: curPage})
		if c.overlap > 0 && len(cur) > c.overlap {
			tail := make([]rune, c.overlap, c.size)
			copy(tail, cur[len(cur)-c.overlap:])
			cur = tail
		} else {
			cur = cur[:0]
		}
		curPage = nextPage
		fresh = false
	}

	for _, cand := range cands {
		seg := []rune(cand.text)
		if len(cur) == 0 {
			curPage = cand.page
		}
		if fresh && len(cur)+len(seg) > c.size {
			flush(cand.page)
		}
		// A single segment longer than the budget is split hard.
		for len(cur)+len(seg) > c.size {
			take := c.size - len(cur)
			cur = append(cur, seg[:take]...)
			seg = seg[take:]
			flush(cand.page)
		}
		if len(seg) > 0 {
			cur = append(cur, seg...)
			fresh = true
		}
	}
	if fresh {
		chunks = append(chunks, entities.Chunk{Text: string(cur), Page: curPage})
	}
	return chunks, nil
}
