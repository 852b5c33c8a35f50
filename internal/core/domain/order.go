package domain

import "time"

// OrderStatus is the canonical status of a purchase order.
// It is a point-in-time label; no transitions between statuses are modelled.
type OrderStatus string

// The five canonical order statuses.
const (
	StatusPending   OrderStatus = "pending"
	StatusOrdered   OrderStatus = "ordered"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// IsValid returns true if the status is one of the canonical values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOrdered, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s OrderStatus) String() string {
	return string(s)
}

// ParsedOrder is a purchase order extracted from a snapshot.
type ParsedOrder struct {
	// OrderNumber is the site-provided digit string or a synthesized id. Never empty.
	OrderNumber string `json:"orderNumber"`

	// OrderDate is best-effort; "now" when no date could be found.
	OrderDate time.Time `json:"orderDate"`

	// TotalAmount is the order total, never negative.
	TotalAmount float64 `json:"totalAmount"`

	// Supplier is the marketplace the snapshot came from.
	Supplier string `json:"supplier"`

	// SellerName is the store within the marketplace, when found.
	SellerName string `json:"sellerName,omitempty"`

	// Status is always one of the canonical statuses.
	Status OrderStatus `json:"status"`

	// Items is never empty for an order that survives extraction.
	Items []ParsedOrderItem `json:"items"`
}

// ItemsTotal sums the total price of all items.
func (o *ParsedOrder) ItemsTotal() float64 {
	var sum float64
	for i := range o.Items {
		sum += o.Items[i].TotalPrice
	}
	return sum
}

// ParsedOrderItem is a single product line within an order.
type ParsedOrderItem struct {
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`

	// ImageURL is an external image reference. Cleared once LocalImagePath is set.
	ImageURL string `json:"imageUrl,omitempty"`

	// LocalImagePath is relative to the storage root.
	LocalImagePath string `json:"localImagePath,omitempty"`

	ProductURL      string            `json:"productUrl,omitempty"`
	SellerName      string            `json:"sellerName,omitempty"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	ParsedComponent *ParsedComponent  `json:"parsedComponent,omitempty"`
}

// SetLocalImage records a local image and clears the external reference.
func (i *ParsedOrderItem) SetLocalImage(path string) {
	i.LocalImagePath = path
	i.ImageURL = ""
}

// NeedsDownload reports whether the item still points at an external image.
func (i *ParsedOrderItem) NeedsDownload() bool {
	return i.LocalImagePath == "" && i.ImageURL != ""
}
