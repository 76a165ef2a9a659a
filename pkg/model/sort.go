package model

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the client-side ordering of the held products.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortTitle     SortKey = "title"

	// sortColor is what the original selector called title ordering.
	// Products carry no color attribute.
	sortColor SortKey = "color"
)

// SortOption is one entry of the sort selector.
type SortOption struct {
	Key   SortKey
	Label string
}

// SortOptions is the fixed, closed set presented by the sort selector.
var SortOptions = []SortOption{
	{Key: SortNone, Label: "Select"},
	{Key: SortPriceAsc, Label: "Price: Low to High"},
	{Key: SortPriceDesc, Label: "Price: High to Low"},
	{Key: SortTitle, Label: "Title"},
}

// ParseSortKey validates s against the closed set of sort keys.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortTitle:
		return k, nil
	case sortColor:
		return SortTitle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Label returns the selector label for the key.
func (k SortKey) Label() string {
	for _, o := range SortOptions {
		if o.Key == k {
			return o.Label
		}
	}
	return string(k)
}

// Next returns the option after k, wrapping around.
func (k SortKey) Next() SortKey {
	return SortOptions[(k.index()+1)%len(SortOptions)].Key
}

// Prev returns the option before k, wrapping around.
func (k SortKey) Prev() SortKey {
	n := len(SortOptions)
	return SortOptions[(k.index()+n-1)%n].Key
}

func (k SortKey) index() int {
	for i, o := range SortOptions {
		if o.Key == k {
			return i
		}
	}
	return 0
}

// SortProducts returns a reordered copy of products. The input is never
// modified. Price orderings are stable for ties; title ordering uses English
// collation so that case and accents compare the way a reader expects.
func SortProducts(products []Product, key SortKey) []Product {
	out := slices.Clone(products)
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortTitle, sortColor:
		c := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b Product) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
	return out
}
