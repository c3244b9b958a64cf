package model

// Category is the topic a question is classified into. The set is closed.
type Category string

const (
	CategoryFlight       Category = "flight"
	CategoryCarRental    Category = "car_rental"
	CategoryRoutes       Category = "routes"
	CategoryAosta        Category = "aosta"
	CategoryChamonix     Category = "chamonix"
	CategoryAnnecyGeneva Category = "annecy_geneva"
	CategoryGeneral      Category = "general"
)

var categories = []Category{
	CategoryFlight,
	CategoryCarRental,
	CategoryRoutes,
	CategoryAosta,
	CategoryChamonix,
	CategoryAnnecyGeneva,
	CategoryGeneral,
}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the categories as plain strings, e.g. for a response schema enum.
func CategoryNames() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory returns the category named s, or false when s is not a member of the set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if !c.Valid() {
		return "", false
	}
	return c, true
}
