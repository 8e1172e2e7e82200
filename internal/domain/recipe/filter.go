package recipe

import "strings"

// Filter decides whether a recipe may be offered for a menu slot.
type Filter interface {
	Allow(r Recipe) bool
}

// FilterFunc adapts a function to Filter
type FilterFunc func(r Recipe) bool

// Allow implements Filter
func (f FilterFunc) Allow(r Recipe) bool {
	return f(r)
}

// AllowAll accepts every recipe. Menu generation uses it unless
// profile-based filtering is switched on.
var AllowAll Filter = FilterFunc(func(Recipe) bool { return true })

// Criteria is a Filter built from a user's dietary data.
type Criteria struct {
	// AnyTags: at least one must be present when non-empty.
	AnyTags []string
	// AllTags: every one must be present.
	AllTags []string
	// ExcludedIngredients are matched case-insensitively as substrings.
	ExcludedIngredients []string
	// MaxCalories caps the calories of one portion as it will be served; 0 disables.
	MaxCalories int
	// Servings multiplies Calories before comparing with MaxCalories.
	Servings int
}

// Allow implements Filter
func (c Criteria) Allow(r Recipe) bool {
	if len(c.AnyTags) > 0 {
		found := false
		for _, tag := range c.AnyTags {
			if r.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, tag := range c.AllTags {
		if !r.HasTag(tag) {
			return false
		}
	}

	for _, excluded := range c.ExcludedIngredients {
		needle := strings.ToLower(strings.TrimSpace(excluded))
		if needle == "" {
			continue
		}
		for _, ingredient := range r.Ingredients {
			if strings.Contains(strings.ToLower(ingredient), needle) {
				return false
			}
		}
	}

	if c.MaxCalories > 0 {
		servings := c.Servings
		if servings < 1 {
			servings = 1
		}
		if r.Calories*servings > c.MaxCalories {
			return false
		}
	}

	return true
}

// Apply returns the recipes accepted by f. A nil filter accepts everything.
func Apply(recipes []Recipe, f Filter) []Recipe {
	if f == nil {
		return recipes
	}
	var out []Recipe
	for _, r := range recipes {
		if f.Allow(r) {
			out = append(out, r)
		}
	}
	return out
}
