package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya-raghavan/statement-parser/internal/dates"
)

func TestParseDayFirst(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"02/01/2024", "2024-01-02"},
		{"02-01-2024", "2024-01-02"},
		{"2/1/2024", "2024-01-02"},
		{"15 Mar 2024", "2024-03-15"},
		{"15 March 2024", "2024-03-15"},
		{"Mar 15, 2024", "2024-03-15"},
		{"2024-03-15", "2024-03-15"},
		{"3rd Jan 2024", "2024-01-03"},
		{"  21  Feb   2024 ", "2024-02-21"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dates.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, dates.Canonical(got))
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := dates.Parse("")
	require.Error(t, err)

	_, err = dates.Parse("due immediately")
	require.Error(t, err)
}

func TestParseCycle(t *testing.T) {
	start, end, err := dates.ParseCycle("02/12/2023 to 01/01/2024")
	require.NoError(t, err)
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, "2024-01-01", dates.Canonical(end))

	start, end, err = dates.ParseCycle("02-12-2023 - 01-01-2024")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-02", dates.Canonical(start))
	assert.Equal(t, "2024-01-01", dates.Canonical(end))

	_, _, err = dates.ParseCycle("01/01/2024")
	require.Error(t, err)
}
