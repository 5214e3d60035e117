package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"car-rental/models"
)

func TestPrice(t *testing.T) {
	car := models.Car{ID: "a", Name: "Swift", PricePerDay: 500}

	for hours := MinHours; hours <= MaxHours; hours++ {
		assert.Equal(t, car.PricePerDay*float64(hours), Price(car, hours), "hours=%d", hours)
	}
	assert.Equal(t, 1500.0, Price(car, 3))
}

func TestPriceDoesNotClamp(t *testing.T) {
	car := models.Car{PricePerDay: 250}

	assert.Equal(t, 0.0, Price(car, 0))
	assert.Equal(t, 5000.0, Price(car, 20))
}

func TestValidHours(t *testing.T) {
	tests := []struct {
		hours int
		want  bool
	}{
		{0, false},
		{1, true},
		{6, true},
		{12, true},
		{13, false},
		{-1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidHours(tt.hours), "ValidHours(%d)", tt.hours)
	}
}

func TestHourOptions(t *testing.T) {
	opts := HourOptions()

	assert.Len(t, opts, 12)
	assert.Equal(t, 1, opts[0])
	assert.Equal(t, 12, opts[len(opts)-1])
}
