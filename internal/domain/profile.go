package domain

// Sex selects the Mifflin-St Jeor constant
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel selects the TDEE multiplier
type ActivityLevel string

const (
	ActivitySedentary    ActivityLevel = "sedentary"
	ActivityBeginner     ActivityLevel = "beginner"
	ActivityIntermediate ActivityLevel = "intermediate"
	ActivityAdvanced     ActivityLevel = "advanced"
)

// Goal selects the calorie adjustment applied to TDEE
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// UserProfile is the physiological input of the target calculation.
// All numeric fields must be positive; range checks belong to the caller.
type UserProfile struct {
	Sex           Sex           `json:"sex"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	AgeYears      int           `json:"age_years"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
}

// BMICategory is the body-mass band a BMI value falls into
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// BMIInfo carries the BMI value with its band and gauge presentation hints
type BMIInfo struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
	Status   string      `json:"status"`
	Color    string      `json:"color"`
	Position int         `json:"position"` // gauge position, percent
}

// CalorieTarget is the result of the target calculation
type CalorieTarget struct {
	BMR                int     `json:"bmr"`
	TDEE               int     `json:"tdee"`
	TargetKcal         int     `json:"target_kcal"`
	BMI                BMIInfo `json:"bmi"`
	MotivationalPhrase string  `json:"motivational_phrase"`
}
