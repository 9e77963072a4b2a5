package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := &Catalog{
		Foods: map[string]FoodEntry{
			"Rice": {Calories: 130, Category: CategoryGood},
		},
	}

	tests := []struct {
		name     string
		catalog  *Catalog
		id       string
		expected FoodEntry
	}{
		{"known food", catalog, "Rice", FoodEntry{ID: "Rice", Calories: 130, Category: CategoryGood}},
		{"unknown food", catalog, "Lasagna", FoodEntry{ID: "Lasagna", Calories: 300, Category: CategoryMedium}},
		{"nil catalog", nil, "Rice", FoodEntry{ID: "Rice", Calories: 300, Category: CategoryMedium}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.catalog.Lookup(tt.id))
		})
	}
}

func TestCatalog_LookupSubstitute(t *testing.T) {
	catalog := &Catalog{Foods: map[string]FoodEntry{"Salad": {Calories: 20, Category: CategoryGood}}}

	assert.Equal(t, 20, catalog.LookupSubstitute("Salad").Calories)

	fallback := catalog.LookupSubstitute("Tofu")
	assert.Equal(t, FallbackSubstituteCalories, fallback.Calories)
	assert.Equal(t, CategoryGood, fallback.Category)
}

func TestCatalog_Substitutes(t *testing.T) {
	catalog := &Catalog{Substitutions: map[string][]string{
		"Pizza":   {"Wrap", "Salad"},
		"Popcorn": {},
	}}

	assert.Equal(t, []string{"Wrap", "Salad"}, catalog.Substitutes("Pizza"))
	assert.Nil(t, catalog.Substitutes("Popcorn"))
	assert.Nil(t, catalog.Substitutes("Rice"))

	var nilCatalog *Catalog
	assert.Nil(t, nilCatalog.Substitutes("Pizza"))
}

func TestCatalog_DecodeAndNormalize(t *testing.T) {
	raw := `{
		"foods": {"Soda": {"calories": 42, "category": "bad"}},
		"alternatives": {"Soda": ["Sparkling water"]}
	}`

	var catalog Catalog
	require.NoError(t, json.Unmarshal([]byte(raw), &catalog))
	catalog.Normalize()

	assert.Equal(t, "Soda", catalog.Foods["Soda"].ID)
	assert.Equal(t, CategoryBad, catalog.Foods["Soda"].Category)
	assert.Equal(t, []string{"Sparkling water"}, catalog.Substitutes("Soda"))

	empty := (&Catalog{}).Normalize()
	assert.NotNil(t, empty.Foods)
	assert.NotNil(t, empty.Substitutions)
}

func TestMealSlot_Label(t *testing.T) {
	assert.Equal(t, "Breakfast", SlotBreakfast.Label())
	assert.Equal(t, "Afternoon Snack", SlotSnack.Label())
	assert.Equal(t, "brunch", MealSlot("brunch").Label())
	assert.True(t, SlotDinner.Valid())
	assert.False(t, MealSlot("brunch").Valid())
}
