package usecase

import (
	"sort"

	"github.com/nutriquiz/backend/internal/domain"
)

// SubstitutionPolicy decides which food categories trigger a substitute suggestion
type SubstitutionPolicy struct {
	TriggerCategories []domain.Category
}

var (
	// DefaultSubstitutionPolicy suggests substitutes for medium and bad foods
	DefaultSubstitutionPolicy = SubstitutionPolicy{
		TriggerCategories: []domain.Category{domain.CategoryMedium, domain.CategoryBad},
	}

	// StrictSubstitutionPolicy suggests substitutes for bad foods only
	StrictSubstitutionPolicy = SubstitutionPolicy{
		TriggerCategories: []domain.Category{domain.CategoryBad},
	}
)

// Triggers reports whether a category asks for a substitute. Good foods never do.
func (p SubstitutionPolicy) Triggers(c domain.Category) bool {
	if c == domain.CategoryGood {
		return false
	}
	for _, t := range p.TriggerCategories {
		if t == c {
			return true
		}
	}
	return false
}

// SubstitutionAdvisor scans selected foods and proposes healthier substitutes
type SubstitutionAdvisor struct {
	catalog *domain.Catalog
	policy  SubstitutionPolicy
}

// NewSubstitutionAdvisor creates an advisor; an empty policy selects DefaultSubstitutionPolicy
func NewSubstitutionAdvisor(catalog *domain.Catalog, policy SubstitutionPolicy) *SubstitutionAdvisor {
	if len(policy.TriggerCategories) == 0 {
		policy = DefaultSubstitutionPolicy
	}
	return &SubstitutionAdvisor{catalog: catalog, policy: policy}
}

// AnalyzeConsumption totals the calories of every selected food and emits one recommendation
// per triggering food that has a known substitute. Slots are scanned in MealSlots order,
// then any other slot keys sorted by name; foods keep their selection order.
func (a *SubstitutionAdvisor) AnalyzeConsumption(selections domain.Selections) domain.ConsumptionAnalysis {
	analysis := domain.ConsumptionAnalysis{Recommendations: []domain.Recommendation{}}

	for _, slot := range scanOrder(selections) {
		for _, food := range selections[slot] {
			entry := a.catalog.Lookup(food)
			analysis.TotalConsumedKcal += entry.Calories

			if !a.policy.Triggers(entry.Category) {
				continue
			}
			subs := a.catalog.Substitutes(food)
			if len(subs) == 0 {
				continue
			}

			sub := a.catalog.LookupSubstitute(subs[0])
			analysis.Recommendations = append(analysis.Recommendations, domain.Recommendation{
				Slot:              slot,
				SlotLabel:         slot.Label(),
				Original:          food,
				OriginalKcal:      entry.Calories,
				OriginalPortion:   DescribePortion(food, entry.Calories),
				OriginalCategory:  entry.Category,
				Substitute:        sub.ID,
				SubstituteKcal:    sub.Calories,
				SubstitutePortion: DescribePortion(sub.ID, sub.Calories),
				Savings:           entry.Calories - sub.Calories,
			})
		}
	}

	return analysis
}

func scanOrder(selections domain.Selections) []domain.MealSlot {
	order := make([]domain.MealSlot, 0, len(selections))
	known := make(map[domain.MealSlot]bool, len(domain.MealSlots))
	for _, slot := range domain.MealSlots {
		known[slot] = true
		if _, ok := selections[slot]; ok {
			order = append(order, slot)
		}
	}

	var extra []domain.MealSlot
	for slot := range selections {
		if !known[slot] {
			extra = append(extra, slot)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(order, extra...)
}
