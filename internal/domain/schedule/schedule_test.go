package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"lunes":         time.Monday,
		"dia_miercoles": time.Wednesday,
		"Sábado":        time.Saturday,
		"sunday":        time.Sunday,
		" friday ":      time.Friday,
	}

	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("feriado")
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))
}

func TestColumn(t *testing.T) {
	assert.Equal(t, "monday", Column(time.Monday))
	assert.Equal(t, "sunday", Column(time.Sunday))
}

func TestDaysOn(t *testing.T) {
	d := Days{Monday: true, Wednesday: true}

	assert.True(t, d.On(time.Monday))
	assert.True(t, d.On(time.Wednesday))
	assert.False(t, d.On(time.Tuesday))
	assert.True(t, d.Any())
	assert.False(t, Days{}.Any())
	assert.True(t, AllDays().On(time.Sunday))
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Abarrotes Lupita", CleanName("Abarrotes Lupita 3"))
	assert.Equal(t, "Extra", CleanName("Extra 101"))
	assert.Equal(t, "Bar 7 Mares", CleanName("Bar 7 Mares"))
	assert.Equal(t, "Tienda", CleanName("Tienda"))
}

func TestArrangeOrdersAndDedupes(t *testing.T) {
	in := []DueClient{
		{ID: "extra_101", Name: "Extra 101", IsExtra: true},
		{ID: "c3", Name: "Store3", IsExtemporaneous: true},
		{ID: "c2", Name: "Store2"},
		{ID: "c1", Name: "Store1"},
		{ID: "c2", Name: "Store2"},
	}

	out := Arrange(in)

	assert.Equal(t, []string{"c1", "c2", "c3", "extra_101"}, IDs(out))
	assert.Equal(t, "Store", out[0].Name)
	assert.Equal(t, "Extra", out[3].Name)
}

func TestFirstSkipsExtras(t *testing.T) {
	first, ok := First([]DueClient{
		{ID: "extra_101", IsExtra: true},
		{ID: "c1"},
	})
	require.True(t, ok)
	assert.Equal(t, "c1", first.ID)

	_, ok = First([]DueClient{{ID: "extra_101", IsExtra: true}})
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	clients := []DueClient{{ID: "a"}, {ID: "b"}}
	assert.True(t, Contains(clients, "b"))
	assert.False(t, Contains(clients, "z"))
}
