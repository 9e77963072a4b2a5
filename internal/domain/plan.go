package domain

// MealSlot is one of the fixed meal periods of a day
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotSnack     MealSlot = "snack"
	SlotDinner    MealSlot = "dinner"
)

// MealSlots lists the slots in the order they are planned, scanned and rendered
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner}

var slotLabels = map[MealSlot]string{
	SlotBreakfast: "Breakfast",
	SlotLunch:     "Lunch",
	SlotSnack:     "Afternoon Snack",
	SlotDinner:    "Dinner",
}

// Label returns the display name of a slot
func (s MealSlot) Label() string {
	if label, ok := slotLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of MealSlots
func (s MealSlot) Valid() bool {
	_, ok := slotLabels[s]
	return ok
}

// Selections maps a meal slot to the food identifiers chosen for it, in selection order
type Selections map[MealSlot][]string

// FoodPortion is one sized food inside a meal slot
type FoodPortion struct {
	Description   string   `json:"description"`
	Kcal          int      `json:"kcal"`
	QuantityLabel string   `json:"quantity_label"`
	Grams         int      `json:"grams"`
	Category      Category `json:"category"`
}

// SlotPlan is the calorie budget of a slot and the portions that fill it
type SlotPlan struct {
	MetaKcal int           `json:"meta_kcal"`
	Options  []FoodPortion `json:"options"`
}

// MealPlan maps every meal slot to its plan
type MealPlan map[MealSlot]SlotPlan

// Recommendation proposes a healthier substitute for a selected food
type Recommendation struct {
	Slot              MealSlot `json:"slot"`
	SlotLabel         string   `json:"slot_label"`
	Original          string   `json:"original"`
	OriginalKcal      int      `json:"original_kcal"`
	OriginalPortion   string   `json:"original_portion"`
	OriginalCategory  Category `json:"original_category"`
	Substitute        string   `json:"substitute"`
	SubstituteKcal    int      `json:"substitute_kcal"`
	SubstitutePortion string   `json:"substitute_portion"`
	Savings           int      `json:"savings"` // may be negative
}

// ConsumptionAnalysis summarizes the selected foods
type ConsumptionAnalysis struct {
	TotalConsumedKcal int              `json:"total_consumed_kcal"`
	Recommendations   []Recommendation `json:"recommendations"`
}
