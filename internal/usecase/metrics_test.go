package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriquiz/backend/internal/domain"
)

func TestIdealWeight(t *testing.T) {
	assert.InDelta(t, 50.0, IdealWeight(152.4, domain.SexMale), 1e-9)
	assert.InDelta(t, 45.5, IdealWeight(152.4, domain.SexFemale), 1e-9)
	assert.InDelta(t, 74.99, IdealWeight(180, domain.SexMale), 0.01)
}

func TestDailyWaterMl(t *testing.T) {
	assert.Equal(t, 2800.0, DailyWaterMl(80))
}

func TestConsumptionPercent(t *testing.T) {
	assert.Equal(t, 50, ConsumptionPercent(1000, 2000))
	assert.Equal(t, 134, ConsumptionPercent(2682, 2000))
	assert.Equal(t, 0, ConsumptionPercent(1000, 0))
}

func TestCaloriesToBurn(t *testing.T) {
	assert.Equal(t, 0, CaloriesToBurn(1500, 2000))
	assert.Equal(t, 0, CaloriesToBurn(2000, 2000))
	assert.Equal(t, 350, CaloriesToBurn(2350, 2000))
}
