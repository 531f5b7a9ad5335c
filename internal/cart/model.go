package cart

import "ds-storefront/internal/catalog"

// LineItem is one customized template in the cart. Field names on the wire
// match the blob the storefront pages already keep in local storage.
type LineItem struct {
	ID          int64        `json:"id"`
	Template    string       `json:"template"`
	Category    string       `json:"category"`
	Package     string       `json:"package"`
	PackageType catalog.Tier `json:"packageType"`
	Color       string       `json:"color"`
	Logo        string       `json:"logo"`
	Price       int64        `json:"price"`
}

type LineItemInput struct {
	Template string
	Category string
	Tier     catalog.Tier
	Color    string
	Logo     string
}

// Snapshot is what change listeners receive after every mutation.
type Snapshot struct {
	Items    []LineItem
	Count    int
	Subtotal int64
	Tax      int64
	Total    int64
}

type Listener func(Snapshot)
