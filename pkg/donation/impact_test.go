package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCO2_KnownCategories(t *testing.T) {
	got := EstimateCO2("dairy", 10)
	if assert.NotNil(t, got) {
		assert.Equal(t, 30.0, *got)
	}

	got = EstimateCO2("meat", 2)
	if assert.NotNil(t, got) {
		assert.Equal(t, 10.0, *got)
	}

	got = EstimateCO2("grain", 4)
	if assert.NotNil(t, got) {
		assert.Equal(t, 2.0, *got)
	}
}

func TestEstimateCO2_UnknownCategory(t *testing.T) {
	assert.Nil(t, EstimateCO2("unknown-category", 5))
	assert.Nil(t, EstimateCO2("", 5))
}

func TestEstimateWater_KnownCategories(t *testing.T) {
	got := EstimateWater("meat", 2)
	if assert.NotNil(t, got) {
		assert.Equal(t, 3000.0, *got)
	}

	got = EstimateWater("produce", 1.5)
	if assert.NotNil(t, got) {
		assert.Equal(t, 450.0, *got)
	}
}

func TestEstimateWater_UnknownCategory(t *testing.T) {
	assert.Nil(t, EstimateWater("frozen", 3))
}
