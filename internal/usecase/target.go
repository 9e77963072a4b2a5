package usecase

import (
	"fmt"
	"math"

	"github.com/nutriquiz/backend/internal/domain"
)

// activityMultipliers scale BMR into TDEE
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:    1.2,
	domain.ActivityBeginner:     1.375,
	domain.ActivityIntermediate: 1.55,
	domain.ActivityAdvanced:     1.725,
}

// goalAdjustments are applied to TDEE as (1 + adjustment)
var goalAdjustments = map[domain.Goal]float64{
	domain.GoalLose:     -0.15,
	domain.GoalMaintain: 0.0,
	domain.GoalGain:     0.10,
}

var motivationalPhrases = map[domain.Goal]string{
	domain.GoalLose:     "Your body can transform and get defined at the same time",
	domain.GoalMaintain: "Your body can stay balanced and healthy",
	domain.GoalGain:     "Your body can get defined and grow at the same time",
}

// BMI band boundaries, upper bound exclusive
const (
	bmiUnderweightBelow = 18.5
	bmiNormalBelow      = 25.0
	bmiOverweightBelow  = 30.0
)

// ComputeTarget derives BMR, TDEE, the daily calorie target and the BMI band from a profile.
// An unrecognized activity level falls back to sedentary; an unrecognized goal is an error.
func ComputeTarget(profile domain.UserProfile) (*domain.CalorieTarget, error) {
	adjustment, ok := goalAdjustments[profile.Goal]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGoal, profile.Goal)
	}
	phrase, err := MotivationalPhrase(profile.Goal)
	if err != nil {
		return nil, err
	}

	bmr := MifflinStJeor(profile.Sex, profile.WeightKg, profile.HeightCm, profile.AgeYears)
	tdee := bmr * ActivityMultiplier(profile.ActivityLevel)
	target := math.RoundToEven(tdee * (1 + adjustment))

	return &domain.CalorieTarget{
		BMR:                int(bmr),
		TDEE:               int(tdee),
		TargetKcal:         int(target),
		BMI:                ClassifyBMI(profile.WeightKg, profile.HeightCm),
		MotivationalPhrase: phrase,
	}, nil
}

// MifflinStJeor returns the basal metabolic rate in kcal/day
func MifflinStJeor(sex domain.Sex, weightKg, heightCm float64, age int) float64 {
	offset := -161.0
	if sex == domain.SexMale {
		offset = 5
	}
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + offset
}

// ActivityMultiplier returns the TDEE multiplier, sedentary for unknown levels
func ActivityMultiplier(level domain.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[domain.ActivitySedentary]
}

// MotivationalPhrase returns the fixed phrase for a goal
func MotivationalPhrase(goal domain.Goal) (string, error) {
	phrase, ok := motivationalPhrases[goal]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownGoal, goal)
	}
	return phrase, nil
}

// ClassifyBMI picks the display band from the raw BMI and reports the value rounded to one decimal,
// so 18.47 is underweight even though it displays as 18.5.
func ClassifyBMI(weightKg, heightCm float64) domain.BMIInfo {
	heightM := heightCm / 100
	raw := weightKg / (heightM * heightM)

	info := BMIBand(raw)
	info.Value = math.RoundToEven(raw*10) / 10
	return info
}

// BMIBand classifies a BMI value. Upper bounds are exclusive: 18.5 is normal, 25 overweight, 30 obese.
func BMIBand(value float64) domain.BMIInfo {
	switch {
	case value < bmiUnderweightBelow:
		return domain.BMIInfo{Value: value, Category: domain.BMIUnderweight, Status: "Underweight", Color: "#3498db", Position: 15}
	case value < bmiNormalBelow:
		return domain.BMIInfo{Value: value, Category: domain.BMINormal, Status: "Normal", Color: "#27ae60", Position: 40}
	case value < bmiOverweightBelow:
		return domain.BMIInfo{Value: value, Category: domain.BMIOverweight, Status: "Overweight", Color: "#f39c12", Position: 70}
	default:
		return domain.BMIInfo{Value: value, Category: domain.BMIObese, Status: "Obese", Color: "#e74c3c", Position: 90}
	}
}
