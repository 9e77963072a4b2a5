package usecase

import (
	"math"

	"github.com/nutriquiz/backend/internal/domain"
)

const waterMlPerKg = 35

// IdealWeight estimates ideal body weight in kg from height (Devine formula)
func IdealWeight(heightCm float64, sex domain.Sex) float64 {
	base := 45.5
	if sex == domain.SexMale {
		base = 50
	}
	return base + 2.3*((heightCm-152.4)/2.54)
}

// DailyWaterMl is the recommended daily water intake
func DailyWaterMl(weightKg float64) float64 {
	return weightKg * waterMlPerKg
}

// ConsumptionPercent is consumed as a percentage of target, 0 when there is no target
func ConsumptionPercent(consumed, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(consumed) / float64(target) * 100))
}

// CaloriesToBurn is how far consumption exceeds the target, never negative
func CaloriesToBurn(consumed, target int) int {
	if consumed <= target {
		return 0
	}
	return consumed - target
}
