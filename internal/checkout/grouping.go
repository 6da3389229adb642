package checkout

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mlisondra/tindahan-backend/pkg/types"
)

// SellerGroup is one seller's slice of the cart: the lines that will become
// a single order.
type SellerGroup struct {
	SellerID string
	Lines    types.CartLines
}

// Total sums the group's line totals.
func (g SellerGroup) Total() decimal.Decimal {
	return g.Lines.TotalPrice()
}

// ProductIDs returns the group's product ids, sorted.
func (g SellerGroup) ProductIDs() []string {
	ids := make([]string, 0, len(g.Lines))
	for id := range g.Lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GroupBySeller splits cart lines into per-seller groups, ordered by seller
// id so order creation is deterministic.
func GroupBySeller(lines []types.CartLine) []SellerGroup {
	buckets := map[string]types.CartLines{}
	for _, line := range lines {
		bucket, ok := buckets[line.SellerID]
		if !ok {
			bucket = types.CartLines{}
			buckets[line.SellerID] = bucket
		}
		bucket[line.ProductID] = line
	}

	groups := make([]SellerGroup, 0, len(buckets))
	for sellerID, bucket := range buckets {
		groups = append(groups, SellerGroup{SellerID: sellerID, Lines: bucket})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SellerID < groups[j].SellerID
	})
	return groups
}
