package catalog

import (
	"testing"

	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLucknowRedLine_Order(t *testing.T) {
	c := LucknowRedLine()

	require.Equal(t, 21, c.Len())

	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "ccs-airport", first.ID)

	last, ok := c.At(20)
	require.True(t, ok)
	assert.Equal(t, "MUNSHIPULIA", last.Name)

	for _, s := range c.Stations() {
		assert.True(t, s.IsOpen(), s.ID)
	}
}

func TestCatalog_FindByID(t *testing.T) {
	c := LucknowRedLine()

	s, ok := c.FindByID("hazratganj")
	assert.True(t, ok)
	assert.Equal(t, "HAZRATGANJ", s.Name)

	s, ok = c.FindByID("no-such-station")
	assert.False(t, ok)
	assert.Equal(t, domain.Station{}, s)
}

func TestCatalog_IndexOf(t *testing.T) {
	c := LucknowRedLine()

	i, ok := c.IndexOf("singar-nagar")
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	i, ok = c.IndexOf("charbagh")
	assert.True(t, ok)
	assert.Equal(t, 9, i)

	_, ok = c.IndexOf("")
	assert.False(t, ok)
}

func TestCatalog_At_OutOfRange(t *testing.T) {
	c := LucknowRedLine()

	_, ok := c.At(-1)
	assert.False(t, ok)
	_, ok = c.At(c.Len())
	assert.False(t, ok)
}

func TestCatalog_StationsReturnsCopy(t *testing.T) {
	c := LucknowRedLine()

	list := c.Stations()
	list[0].Name = "CHANGED"

	s, _ := c.At(0)
	assert.Equal(t, "CCS AIRPORT", s.Name)
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name     string
		stations []domain.Station
	}{
		{
			name:     "empty id",
			stations: []domain.Station{{ID: "a"}, {ID: ""}},
		},
		{
			name:     "duplicate id",
			stations: []domain.Station{{ID: "a"}, {ID: "b"}, {ID: "a"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.stations)
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]domain.Station{{ID: "x"}, {ID: "x"}})
	})
}
