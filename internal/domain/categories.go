package domain

import "strings"

const (
	CategoryAll     = "All"
	CategoryGeneral = "General"
)

var baseCategories = []string{
	CategoryAll,
	"Grocery",
	"Pharmacy",
	"Restaurant",
	"Fast Food",
	"Bakery",
	"Butchery",
	"Electronics",
	"Fashion",
	"Hardware",
	"Water",
	"Gas",
	"Stationery",
	"Salon",
	"Agrovet",
	"BodaBoda",
	"Mechanic",
	CategoryGeneral,
}

func BaseCategories() []string {
	out := make([]string, len(baseCategories))
	copy(out, baseCategories)
	return out
}

// MergeCategories appends the categories seen on live sellers to the base
// list. Duplicates are dropped case-insensitively; the first casing wins.
func MergeCategories(sellers []NearbySeller) []string {
	seen := make(map[string]struct{}, len(baseCategories)+len(sellers))
	out := make([]string, 0, len(baseCategories)+len(sellers))

	add := func(category string) {
		if category == "" {
			return
		}
		key := strings.ToLower(category)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, category)
	}

	for _, category := range baseCategories {
		add(category)
	}
	for _, seller := range sellers {
		category := seller.Category
		if category == "" {
			category = CategoryGeneral
		}
		add(strings.TrimSpace(category))
	}

	return out
}

func (s NearbySeller) CategoryOrGeneral() string {
	if s.Category == "" {
		return CategoryGeneral
	}

	return s.Category
}

// FilterSellers keeps the sellers in the active category. "All" keeps
// everything.
func FilterSellers(sellers []NearbySeller, active string) []NearbySeller {
	if active == CategoryAll {
		return sellers
	}

	out := make([]NearbySeller, 0, len(sellers))
	for _, seller := range sellers {
		if seller.CategoryOrGeneral() == active {
			out = append(out, seller)
		}
	}

	return out
}
