package domain

// Category classifies how healthy a food is
type Category string

const (
	CategoryGood   Category = "good"
	CategoryMedium Category = "medium"
	CategoryBad    Category = "bad"
)

// Fallback values for foods missing from the catalog
const (
	FallbackFoodCalories       = 300
	FallbackSubstituteCalories = 200
)

// FoodEntry is a catalog record. Calories are kcal per 100 g.
type FoodEntry struct {
	ID       string   `json:"-"`
	Calories int      `json:"calories"`
	Category Category `json:"category"`
}

// Catalog is the read-only food reference data: nutrition per food and
// ordered substitute candidates (best first). It is never mutated after loading.
type Catalog struct {
	Foods         map[string]FoodEntry `json:"foods"`
	Substitutions map[string][]string  `json:"alternatives"`
}

// EmptyCatalog returns a catalog with no foods and no substitutions
func EmptyCatalog() *Catalog {
	return &Catalog{
		Foods:         map[string]FoodEntry{},
		Substitutions: map[string][]string{},
	}
}

// Lookup resolves a food, falling back to 300 kcal / medium when it is unknown
func (c *Catalog) Lookup(id string) FoodEntry {
	return c.lookup(id, FoodEntry{ID: id, Calories: FallbackFoodCalories, Category: CategoryMedium})
}

// LookupSubstitute resolves a substitute food, falling back to 200 kcal / good
func (c *Catalog) LookupSubstitute(id string) FoodEntry {
	return c.lookup(id, FoodEntry{ID: id, Calories: FallbackSubstituteCalories, Category: CategoryGood})
}

func (c *Catalog) lookup(id string, fallback FoodEntry) FoodEntry {
	if c == nil {
		return fallback
	}
	entry, ok := c.Foods[id]
	if !ok {
		return fallback
	}
	entry.ID = id
	return entry
}

// Substitutes returns the ordered substitute candidates for a food, nil when none are known
func (c *Catalog) Substitutes(id string) []string {
	if c == nil {
		return nil
	}
	subs := c.Substitutions[id]
	if len(subs) == 0 {
		return nil
	}
	return subs
}

// Normalize fills nil maps and entry IDs after decoding
func (c *Catalog) Normalize() *Catalog {
	if c.Foods == nil {
		c.Foods = map[string]FoodEntry{}
	}
	if c.Substitutions == nil {
		c.Substitutions = map[string][]string{}
	}
	for id, entry := range c.Foods {
		entry.ID = id
		c.Foods[id] = entry
	}
	return c
}
