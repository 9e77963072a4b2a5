package usecase

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/nutriquiz/backend/internal/domain"
)

// Portion is a calorie budget converted into grams of a specific food
type Portion struct {
	Grams int
	Unit  string
	Kcal  int
}

// Label renders the portion the way the plan shows it, e.g. "96 g (1 cup)"
func (p Portion) Label() string {
	return fmt.Sprintf("%d g (%s)", p.Grams, p.Unit)
}

type breakpoint struct {
	maxGrams float64
	unit     string
}

// budgetBreakpoints size portions computed from a calorie budget.
// Upper bounds are inclusive and checked in order; the last entry catches everything else.
var budgetBreakpoints = []breakpoint{
	{15, "1 tablespoon"},
	{30, "2 tablespoons"},
	{50, "1/2 cup"},
	{100, "1 cup"},
	{150, "1 dessert plate"},
	{200, "1 shallow plate"},
	{math.Inf(1), "1 deep plate"},
}

// referenceBreakpoints size portions computed from a food's own calorie value
var referenceBreakpoints = []breakpoint{
	{20, "1 tablespoon"},
	{50, "1/2 cup"},
	{100, "1 cup"},
	{150, "1 dessert plate"},
	{250, "1 shallow plate"},
	{math.Inf(1), "1 deep plate"},
}

func unitFor(grams float64, table []breakpoint) string {
	for _, bp := range table {
		if grams <= bp.maxGrams {
			return bp.unit
		}
	}
	return table[len(table)-1].unit
}

// SizePortion converts a calorie budget for a catalog food into grams.
// The energy density comes from the catalog (300 kcal/100 g when unknown).
// Kcal is re-derived from the rounded grams, so it can differ slightly from desiredKcal.
func SizePortion(catalog *domain.Catalog, foodID string, desiredKcal int) Portion {
	density := float64(catalog.Lookup(foodID).Calories)
	if density <= 0 {
		density = domain.FallbackFoodCalories
	}

	grams := float64(desiredKcal) * 100 / density
	rounded := math.RoundToEven(grams)
	return Portion{
		Grams: int(rounded),
		Unit:  unitFor(grams, budgetBreakpoints),
		Kcal:  int(math.RoundToEven(rounded * density / 100)),
	}
}

type namedDensity struct {
	name    string
	per100g float64
}

// referenceDensities are kcal per 100 g matched by food name substring, first match wins
var referenceDensities = []namedDensity{
	{"whole wheat bread", 280}, {"french bread", 300}, {"rice", 130}, {"beans", 90},
	{"chicken", 165}, {"beef", 250}, {"fish", 180}, {"egg", 155},
	{"sweet potato", 86}, {"cassava", 160}, {"pumpkin", 26}, {"salad", 20},
	{"yogurt", 60}, {"fruit", 50}, {"tapioca", 98}, {"couscous", 112},
	{"pasta", 131}, {"pizza", 266}, {"hamburger", 295}, {"fried", 365},
}

const defaultReferenceDensity = 150

// ReferenceDensity returns the kcal per 100 g used when describing a food by name
func ReferenceDensity(foodName string) float64 {
	name := normalizeFoodName(foodName)
	for _, d := range referenceDensities {
		if strings.Contains(name, d.name) {
			return d.per100g
		}
	}
	return defaultReferenceDensity
}

// DescribePortion describes how much of a food holds kcal, e.g. "120g (1 dessert plate)".
// It sizes from the food name rather than the catalog and is only used for substitution reports.
func DescribePortion(foodName string, kcal int) string {
	grams := float64(kcal) * 100 / ReferenceDensity(foodName)
	return fmt.Sprintf("%dg (%s)", int(math.RoundToEven(grams)), unitFor(grams, referenceBreakpoints))
}

func normalizeFoodName(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}
