// Package grocery classifies ingredients into shopping categories and
// groups session shopping lists for display and export.
package grocery

import "github.com/amble-health/amble/internal/storage"

// DefaultCategory is used when an ingredient carries no group tag.
const DefaultCategory = "Other"

// CategoryGroup — ингредиенты одной категории, в порядке добавления.
type CategoryGroup struct {
	Category string
	Items    []storage.Ingredient
}

// GroupByCategory partitions ingredients by their SmartGroup tag.
// Groups appear in order of first occurrence and items keep their
// input order, so repeated calls over the same slice produce the
// same result.
func GroupByCategory(ingredients []storage.Ingredient) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for _, ing := range ingredients {
		category := ing.SmartGroup
		if category == "" {
			category = DefaultCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, ing)
	}

	return groups
}
