package pdftext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/internal/common"
)

func docWithText(backend string, texts ...string) *Document {
	d := &Document{Backend: backend, PageCount: len(texts)}
	for i, txt := range texts {
		var blocks []Block
		if txt != "" {
			blocks = []Block{{Text: txt, Page: i + 1, BBox: boxAt(40, 100)}}
		}
		d.Pages = append(d.Pages, Page{Number: i + 1, Blocks: blocks})
	}
	return d
}

func TestTextLengthSumsPages(t *testing.T) {
	assert.Equal(t, 0, textLength(nil))
	assert.Equal(t, 0, textLength(docWithText("a", "")))
	assert.Equal(t, 10, textLength(docWithText("a", "hello", "world")))
}

func TestRicherDocumentKeepsMoreText(t *testing.T) {
	sparse := docWithText("primary", "hi")
	rich := docWithText("fallback", "a much longer page of text")

	assert.Same(t, rich, richerDocument(sparse, rich))
	// The first document wins ties and nil competitors.
	assert.Same(t, sparse, richerDocument(sparse, docWithText("fallback", "hi")))
	assert.Same(t, sparse, richerDocument(sparse, nil))
	assert.Same(t, rich, richerDocument(nil, rich))
}

func TestExtractRejectsEmptyInput(t *testing.T) {
	_, err := NewExtractor(common.ExtractionConfig{}, nil).Extract(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFile)
}

func TestExtractRejectsGarbageInput(t *testing.T) {
	_, err := NewExtractor(common.ExtractionConfig{}, nil).Extract(context.Background(), []byte("not a pdf at all"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFile)
}
