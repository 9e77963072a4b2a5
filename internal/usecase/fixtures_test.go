package usecase

import "github.com/nutriquiz/backend/internal/domain"

func newTestCatalog() *domain.Catalog {
	return (&domain.Catalog{
		Foods: map[string]domain.FoodEntry{
			"Oats":              {Calories: 389, Category: domain.CategoryGood},
			"Banana":            {Calories: 89, Category: domain.CategoryGood},
			"Rice":              {Calories: 130, Category: domain.CategoryGood},
			"Grilled chicken":   {Calories: 165, Category: domain.CategoryGood},
			"Whole wheat bread": {Calories: 247, Category: domain.CategoryGood},
			"Sparkling water":   {Calories: 0, Category: domain.CategoryGood},
			"Salad":             {Calories: 20, Category: domain.CategoryGood},
			"Granola":           {Calories: 100, Category: domain.CategoryMedium},
			"White bread":       {Calories: 265, Category: domain.CategoryMedium},
			"Pizza":             {Calories: 266, Category: domain.CategoryBad},
			"Soda":              {Calories: 42, Category: domain.CategoryBad},
			"Fried potatoes":    {Calories: 312, Category: domain.CategoryBad},
		},
		Substitutions: map[string][]string{
			"Pizza":           {"Whole wheat wrap", "Salad"},
			"Soda":            {"Sparkling water"},
			"White bread":     {"Whole wheat bread"},
			"Grilled chicken": {"Tofu"},
			"Fried potatoes":  {},
		},
	}).Normalize()
}
