// Package ranking fetches university league tables for a fixed set of course
// sectors and extracts the ranked institution names.
package ranking

// Sector is a course sector offered in the ranking lookup.
type Sector struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var sectors = []Sector{
	{Key: "art-and-design", Label: "Art et Design"},
	{Key: "business-and-management-studies", Label: "Études Commerciales"},
	{Key: "law", Label: "Loi"},
	{Key: "psychology", Label: "Psychologie"},
	{Key: "general-engineering", Label: "Ingénierie"},
	{Key: "medicine", Label: "Medecine"},
	{Key: "sports-science", Label: "Sciences Sportives"},
	{Key: "computer-science", Label: "Informatique"},
}

// Sectors returns the catalogue in display order.
func Sectors() []Sector {
	out := make([]Sector, len(sectors))
	copy(out, sectors)
	return out
}

// Lookup returns the sector for key.
func Lookup(key string) (Sector, bool) {
	for _, s := range sectors {
		if s.Key == key {
			return s, true
		}
	}
	return Sector{}, false
}
