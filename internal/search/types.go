// Package search is the client for the inventory backend's JSON search API.
//
// The API returns results grouped by area of the system. Group order is
// significant and fixed: catalog first, then purchases, then sales - no
// matter how the payload orders its keys.
package search

// Recognized result groups.
const (
	GroupCatalog   = "catalog"
	GroupPurchases = "purchases"
	GroupSales     = "sales"
)

// GroupOrder is the fixed display order for result groups.
var GroupOrder = []string{GroupCatalog, GroupPurchases, GroupSales}

var groupLabels = map[string]string{
	GroupCatalog:   "Catalog",
	GroupPurchases: "Purchases",
	GroupSales:     "Sales",
}

// GroupLabel returns the display label for a group name.
// Unknown groups fall back to the raw name.
func GroupLabel(name string) string {
	if label, ok := groupLabels[name]; ok {
		return label
	}
	return name
}

// Item is a single search hit.
type Item struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Response holds grouped search results for one query.
//
// Items are never mutated after receipt; a Response is treated as an
// immutable snapshot by everything downstream.
type Response struct {
	Groups map[string][]Item
}

// Group returns the items for a group name, or nil.
func (r Response) Group(name string) []Item {
	return r.Groups[name]
}

// Empty reports whether no recognized group has any items.
func (r Response) Empty() bool {
	for _, name := range GroupOrder {
		if len(r.Groups[name]) > 0 {
			return false
		}
	}
	return true
}

// Total returns the number of items across recognized groups.
func (r Response) Total() int {
	n := 0
	for _, name := range GroupOrder {
		n += len(r.Groups[name])
	}
	return n
}

// apiResponse is the wire format of the search endpoint.
type apiResponse struct {
	Q       string            `json:"q"`
	Results map[string][]Item `json:"results"`
}
