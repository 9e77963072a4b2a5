package domain

import "time"

// Contact holds the lead's contact details
type Contact struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"omitempty,email"`
	WhatsApp string `json:"whatsapp" binding:"omitempty,max=32"`
}

// QuizSubmission is the payload posted by the quiz form.
// Binding tags carry the caller-side range checks; the engine does not repeat them.
type QuizSubmission struct {
	Contact
	Sex           Sex           `json:"sex" binding:"required,oneof=male female"`
	WeightKg      float64       `json:"weight_kg" binding:"required,gte=30,lte=300"`
	HeightCm      float64       `json:"height_cm" binding:"required,gte=100,lte=250"`
	AgeYears      int           `json:"age_years" binding:"required,gte=10,lte=120"`
	ActivityLevel ActivityLevel `json:"activity_level" binding:"required,oneof=sedentary beginner intermediate advanced"`
	Goal          Goal          `json:"goal" binding:"required,oneof=lose maintain gain"`
	Foods         Selections    `json:"foods"`
}

// Profile extracts the engine input from a submission
func (q *QuizSubmission) Profile() UserProfile {
	return UserProfile{
		Sex:           q.Sex,
		WeightKg:      q.WeightKg,
		HeightCm:      q.HeightCm,
		AgeYears:      q.AgeYears,
		ActivityLevel: q.ActivityLevel,
		Goal:          q.Goal,
	}
}

// Session is what is kept between the quiz submission and the results pages
type Session struct {
	ID         string         `json:"id"`
	Submission QuizSubmission `json:"submission"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Lead is one row of the append-only lead log
type Lead struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time     `json:"created_at"`
	Name          string        `json:"name"`
	Email         string        `json:"email" gorm:"index"`
	WhatsApp      string        `json:"whatsapp"`
	Goal          Goal          `json:"goal"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	AgeYears      int           `json:"age_years"`
}

// NewLead builds the lead record of a submission
func NewLead(q *QuizSubmission, at time.Time) *Lead {
	return &Lead{
		CreatedAt:     at,
		Name:          q.Name,
		Email:         q.Email,
		WhatsApp:      q.WhatsApp,
		Goal:          q.Goal,
		ActivityLevel: q.ActivityLevel,
		WeightKg:      q.WeightKg,
		HeightCm:      q.HeightCm,
		AgeYears:      q.AgeYears,
	}
}

// PlanResponse is the quick plan returned while the quiz is still open
type PlanResponse struct {
	Target *CalorieTarget `json:"target"`
	Plan   MealPlan       `json:"plan"`
}

// PlanReport is everything the results page and the PDF show
type PlanReport struct {
	SessionID          string              `json:"session_id"`
	Submission         QuizSubmission      `json:"submission"`
	Target             *CalorieTarget      `json:"target"`
	Plan               MealPlan            `json:"plan"`
	Analysis           ConsumptionAnalysis `json:"analysis"`
	IdealWeightKg      float64             `json:"ideal_weight_kg"`
	DailyWaterMl       float64             `json:"daily_water_ml"`
	ConsumptionPercent int                 `json:"consumption_percent"`
	CaloriesToBurn     int                 `json:"calories_to_burn"`
}
