package usecase

import (
	"fmt"
	"math"

	"github.com/nutriquiz/backend/internal/domain"
)

// SlotRatio is the share of the daily target assigned to a meal slot
type SlotRatio struct {
	Slot  domain.MealSlot
	Ratio float64
}

// DefaultSlotRatios split the day 25/35/15/25
var DefaultSlotRatios = []SlotRatio{
	{domain.SlotBreakfast, 0.25},
	{domain.SlotLunch, 0.35},
	{domain.SlotSnack, 0.15},
	{domain.SlotDinner, 0.25},
}

const ratioTolerance = 1e-9

// MealComposer allocates a calorie target across meal slots and sizes the chosen foods
type MealComposer struct {
	catalog *domain.Catalog
	ratios  []SlotRatio
}

// NewMealComposer creates a composer. Nil ratios select DefaultSlotRatios; custom ratios
// must name every meal slot exactly once and sum to 1.
func NewMealComposer(catalog *domain.Catalog, ratios []SlotRatio) (*MealComposer, error) {
	if ratios == nil {
		ratios = DefaultSlotRatios
	}
	if err := validateRatios(ratios); err != nil {
		return nil, err
	}
	return &MealComposer{catalog: catalog, ratios: ratios}, nil
}

func validateRatios(ratios []SlotRatio) error {
	if len(ratios) != len(domain.MealSlots) {
		return fmt.Errorf("%w: want %d slots, got %d", domain.ErrInvalidSlotRatios, len(domain.MealSlots), len(ratios))
	}

	seen := make(map[domain.MealSlot]bool, len(ratios))
	sum := 0.0
	for _, r := range ratios {
		if seen[r.Slot] {
			return fmt.Errorf("%w: duplicate slot %q", domain.ErrInvalidSlotRatios, r.Slot)
		}
		if !r.Slot.Valid() {
			return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidSlotRatios, r.Slot)
		}
		if r.Ratio < 0 {
			return fmt.Errorf("%w: negative ratio for %q", domain.ErrInvalidSlotRatios, r.Slot)
		}
		seen[r.Slot] = true
		sum += r.Ratio
	}

	if math.Abs(sum-1) > ratioTolerance {
		return fmt.Errorf("%w: ratios sum to %v", domain.ErrInvalidSlotRatios, sum)
	}
	return nil
}

// ComposePlan builds the meal plan for a daily target. Each slot gets floor(target*ratio)
// kcal, split evenly (integer division) across its selected foods. Slots without a
// selection keep their budget and an empty option list.
func (m *MealComposer) ComposePlan(targetKcal int, selections domain.Selections) domain.MealPlan {
	plan := make(domain.MealPlan, len(m.ratios))

	for _, r := range m.ratios {
		meta := int(math.Floor(float64(targetKcal) * r.Ratio))
		foods := selections[r.Slot]

		options := make([]domain.FoodPortion, 0, len(foods))
		if len(foods) > 0 {
			perFood := meta / len(foods)
			for _, food := range foods {
				portion := SizePortion(m.catalog, food, perFood)
				options = append(options, domain.FoodPortion{
					Description:   food,
					Kcal:          portion.Kcal,
					QuantityLabel: portion.Label(),
					Grams:         portion.Grams,
					Category:      m.catalog.Lookup(food).Category,
				})
			}
		}

		plan[r.Slot] = domain.SlotPlan{MetaKcal: meta, Options: options}
	}

	return plan
}
