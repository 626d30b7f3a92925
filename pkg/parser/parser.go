// Package parser turns raw file bytes into ordered pages of text.
package parser

import "context"

// Page is one page of extracted text. Numbers start at 1.
type Page struct {
	Number int
	Text   string
}

type PageParser interface {
	Parse(ctx context.Context, data []byte) ([]Page, error)
}
