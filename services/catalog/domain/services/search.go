package services

import "github.com/ghuser/storecatalog/services/catalog/domain/models"

// SearchStrategy names the storage query a SearchFilter resolves to.
type SearchStrategy int

const (
	// SearchAll returns every item.
	SearchAll SearchStrategy = iota
	// SearchByNameAndPriceRange matches the exact name within an inclusive price range.
	SearchByNameAndPriceRange
	// SearchByNameContaining matches a case-insensitive name substring.
	SearchByNameContaining
	// SearchByPriceRange matches an inclusive price range.
	SearchByPriceRange
)

func (s SearchStrategy) String() string {
	switch s {
	case SearchByNameAndPriceRange:
		return "name_and_price_range"
	case SearchByNameContaining:
		return "name_containing"
	case SearchByPriceRange:
		return "price_range"
	default:
		return "all"
	}
}

// ResolveSearch picks the query for f. The first matching branch wins:
//  1. name, min and max present → exact name within the price range
//  2. name present → case-insensitive substring on name
//  3. min and max present → price range
//  4. anything else, including a single price bound → all items
//
// Branch 1 matches names exactly while branch 2 matches substrings; callers
// rely on that difference.
func ResolveSearch(f models.SearchFilter) SearchStrategy {
	switch {
	case f.Name != nil && f.MinPrice != nil && f.MaxPrice != nil:
		return SearchByNameAndPriceRange
	case f.Name != nil:
		return SearchByNameContaining
	case f.MinPrice != nil && f.MaxPrice != nil:
		return SearchByPriceRange
	default:
		return SearchAll
	}
}
