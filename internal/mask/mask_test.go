package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/priya-raghavan/statement-parser/internal/mask"
)

func TestLastFour(t *testing.T) {
	assert.Equal(t, "1234", mask.LastFour("4321 0000 9999 1234"))
	assert.Equal(t, "1234", mask.LastFour("XXXX XXXX XXXX 1234"))
	assert.Equal(t, "5678", mask.LastFour("4321-98XX-XXXX-5678"))
	assert.Equal(t, "1234", mask.LastFour("1234"))
	assert.Equal(t, "", mask.LastFour("XX1"))
	assert.Equal(t, "", mask.LastFour("no digits here"))
}

func TestCard(t *testing.T) {
	assert.Equal(t, "XXXX-XXXX-XXXX-1234", mask.Card("4321 0000 9999 1234"))
	assert.Equal(t, "", mask.Card("---"))
}

func TestScrub(t *testing.T) {
	in := "Card Number: 4321 0000 9999 1234 Statement Date: 01/01/2024"
	out := mask.Scrub(in)
	assert.NotContains(t, out, "4321 0000 9999 1234")
	assert.Contains(t, out, "XXXX-XXXX-XXXX-1234")
	assert.Contains(t, out, "01/01/2024")
}
