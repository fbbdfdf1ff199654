package ocr

import (
	"context"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner fakes pdftoppm and tesseract: the first writes a page image
// where the real binary would, the second returns canned TSV.
type stubRunner struct {
	t   *testing.T
	tsv string
}

func (s stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	switch name {
	case "pdftoppm":
		prefix := args[len(args)-1]
		f, err := os.Create(prefix + "-1.png")
		require.NoError(s.t, err)
		require.NoError(s.t, png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))))
		require.NoError(s.t, f.Close())
		return nil, nil, nil
	case "tesseract":
		return []byte(s.tsv), nil, nil
	}
	s.t.Fatalf("unexpected command %q", name)
	return nil, nil, nil
}

func TestExtractPDFWithStubbedTools(t *testing.T) {
	engine := NewEngine(Config{Preprocess: false}, nil).
		WithRunner(stubRunner{t: t, tsv: sampleTSV})

	res, err := engine.ExtractPDF(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.Len(t, res.Pages, 1)

	assert.Equal(t, "Total Amount Due\n12,345.00", res.Pages[0].Text)
	// 0.7 * 0.925 TSV mean + 0.3 * 0.35 heuristic (base plus amount match).
	assert.InDelta(t, 0.7525, res.Confidence, 1e-9)
	assert.InDelta(t, BlendConfidence(0.925, res.Pages[0].Text), res.Confidence, 1e-9)
	assert.Len(t, res.Pages[0].Words, 4)
	assert.Empty(t, res.Warnings)
}

func TestExtractPDFPreprocessPath(t *testing.T) {
	engine := NewEngine(Config{Preprocess: true}, nil).
		WithRunner(stubRunner{t: t, tsv: sampleTSV})

	res, err := engine.ExtractPDF(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.Len(t, res.Pages, 1)
	assert.Empty(t, res.Warnings)
}
