package model

// Product is a catalog entry as returned by the remote catalog service.
// Products are never built locally; treat them as read-only values.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	Images             []string `json:"images"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Category           string   `json:"category,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
	Stock              int      `json:"stock,omitempty"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
}

// FirstImage returns the first image URL, falling back to the thumbnail.
func (p Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Thumbnail
}

// PageResult is one response of the list or search operations.
type PageResult struct {
	Products []Product `json:"products"`
	Total    *int      `json:"total,omitempty"` // absent on some search responses
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// TotalOr returns the server-side total, or the number of returned products
// when the service omitted it.
func (r *PageResult) TotalOr() int {
	if r == nil {
		return 0
	}
	if r.Total != nil {
		return *r.Total
	}
	return len(r.Products)
}
