package types

import "github.com/shopspring/decimal"

// CartLine is one product's cart entry. The JSON field names follow the
// legacy mobile client's cart blob so existing exports stay readable.
type CartLine struct {
	ProductID   string          `json:"productId"`
	SellerID    string          `json:"sellerId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl"`
	// MaxStock is the last known stock ceiling; zero means unknown.
	MaxStock int `json:"maxStock"`
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartLines is the whole-cart mapping keyed by product id, persisted as a
// single serialized blob.
type CartLines map[string]CartLine

// TotalPrice sums the line totals across the cart.
func (c CartLines) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount sums the quantities across the cart.
func (c CartLines) ItemCount() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}
