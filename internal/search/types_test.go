package search

import (
	"testing"
	"time"
)

func TestGroupOrderIsFixed(t *testing.T) {
	want := []string{GroupCatalog, GroupPurchases, GroupSales}
	if len(GroupOrder) != len(want) {
		t.Fatalf("GroupOrder = %v", GroupOrder)
	}
	for i, g := range want {
		if GroupOrder[i] != g {
			t.Errorf("GroupOrder[%d] = %q, want %q", i, GroupOrder[i], g)
		}
	}
}

func TestGroupLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{GroupCatalog, "Catalog"},
		{GroupPurchases, "Purchases"},
		{GroupSales, "Sales"},
		{"mystery", "mystery"},
	}
	for _, tt := range tests {
		if got := GroupLabel(tt.in); got != tt.want {
			t.Errorf("GroupLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResponseEmptyIgnoresUnknownGroups(t *testing.T) {
	r := Response{Groups: map[string][]Item{
		"mystery": {{URL: "/x", Title: "X"}},
	}}
	if !r.Empty() {
		t.Error("unknown groups should not count toward Empty")
	}
	if r.Total() != 0 {
		t.Errorf("Total = %d, want 0", r.Total())
	}
}

func TestQueryCacheNormalizesKeys(t *testing.T) {
	c := newQueryCache(time.Minute)
	resp := Response{Groups: map[string][]Item{GroupCatalog: {{URL: "/c", Title: "C"}}}}
	c.put("Widget", resp)

	for _, q := range []string{"widget", "  WIDGET  ", "Widget"} {
		if got, ok := c.get(q); !ok || got.Total() != 1 {
			t.Errorf("get(%q) = %+v, %v", q, got, ok)
		}
	}
}

func TestQueryCacheDisabled(t *testing.T) {
	c := newQueryCache(0)
	c.put("widget", Response{})
	if _, ok := c.get("widget"); ok {
		t.Error("disabled cache returned a hit")
	}
}
