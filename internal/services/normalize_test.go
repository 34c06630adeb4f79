package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimacar/exercise-tracker/internal/models"
)

func TestCapitalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"running hard", "Running Hard"},
		{"run", "Run"},
		{"RUN FAST", "Run Fast"},
		{"a b run", "a b Run"}, // single-letter words stay lowercase
		{"swim2win", "Swim2win"},
		{"morning  jog", "Morning  Jog"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, capitalize(c.in), "input %q", c.in)
	}
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Fri Jan 05 2024", formatDay(d))

	// the stored day form round-trips
	d, err = parseDay("Fri Jan 05 2024")
	require.NoError(t, err)
	assert.Equal(t, "Fri Jan 05 2024", formatDay(d))

	_, err = parseDay("next tuesday")
	assert.Error(t, err)
}

func TestSortLogDesc(t *testing.T) {
	log := []models.Exercise{
		{Description: "A", Date: "Mon Jan 01 2024"},
		{Description: "B", Date: "Sat Jan 20 2024"},
		{Description: "C", Date: "Wed Jan 10 2024"},
		{Description: "D", Date: "Sat Jan 20 2024"},
	}
	sortLogDesc(log)

	var order []string
	for _, e := range log {
		order = append(order, e.Description)
	}
	// descending by date, stable for equal dates
	assert.Equal(t, []string{"B", "D", "C", "A"}, order)
}
