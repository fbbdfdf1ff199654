package ocr

import (
	"strconv"
	"strings"
)

// TSV columns: level page_num block_num par_num line_num word_num
// left top width height conf text
const tsvColumns = 12

// ParseTSV decodes tesseract TSV output into words and returns the mean
// word confidence in 0..1. Header rows and non-word rows (conf -1) are
// skipped.
func ParseTSV(out []byte, pageNum int) ([]Word, float64) {
	lines := strings.Split(string(out), "\n")

	var words []Word
	var sum float64
	lineCounter := 0
	lastLineKey := ""
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 {
			continue // skip header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns {
			continue // defensive
		}
		confStr := cols[10]
		text := strings.TrimSpace(cols[11])
		if confStr == "" || confStr == "-1" || text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil {
			continue
		}

		// block/par/line triple identifies the visual line
		lineKey := cols[2] + "/" + cols[3] + "/" + cols[4]
		if lineKey != lastLineKey {
			lineCounter++
			lastLineKey = lineKey
		}

		left, _ := strconv.Atoi(cols[6])
		top, _ := strconv.Atoi(cols[7])
		width, _ := strconv.Atoi(cols[8])
		height, _ := strconv.Atoi(cols[9])

		words = append(words, Word{
			Text:       text,
			Page:       pageNum,
			Line:       lineCounter,
			Left:       left,
			Top:        top,
			Width:      width,
			Height:     height,
			Confidence: conf / 100.0,
		})
		sum += conf
	}
	if len(words) == 0 {
		return nil, 0
	}
	return words, sum / float64(len(words)) / 100.0
}

// AssembleText rebuilds page text from TSV words, one visual line per
// output line.
func AssembleText(words []Word) string {
	if len(words) == 0 {
		return ""
	}
	var sb strings.Builder
	currentLine := words[0].Line
	for i, w := range words {
		if i > 0 {
			if w.Line != currentLine {
				sb.WriteByte('\n')
				currentLine = w.Line
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.Text)
	}
	return sb.String()
}
