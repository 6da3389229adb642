package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the normalized view of one catalog node. The legacy export is
// not uniform: field casing and the stock encoding differ per seller, so all
// reads go through the candidate-key decoders below.
type Product struct {
	ProductID string          `json:"productId"`
	SellerID  string          `json:"sellerId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"imageUrl"`
}

// Candidate keys tried in order; first hit wins.
var (
	productsNodeKeys = []string{"Products", "products"}
	nameKeys         = []string{"Name", "name"}
	priceKeys        = []string{"Price", "price"}
	stockKeys        = []string{"Stock", "stock", "quantity"}
	imageKeys        = []string{"PhotoUrl", "photoUrl", "imageUrl"}
)

type rawNode map[string]json.RawMessage

// productsNode extracts the products collection from a catalog document,
// trying the primary casing first and the lowercase variant second.
func productsNode(doc json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(doc) == 0 {
		return nil, false
	}
	var top rawNode
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, false
	}
	for _, key := range productsNodeKeys {
		raw, ok := top[key]
		if !ok {
			continue
		}
		var node map[string]json.RawMessage
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		return node, true
	}
	return nil, false
}

func decodeProduct(sellerID, productID string, raw json.RawMessage) (Product, bool) {
	var node rawNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return Product{}, false
	}
	return Product{
		ProductID: productID,
		SellerID:  sellerID,
		Name:      decodeString(node, nameKeys),
		Price:     decodePrice(node, priceKeys),
		Stock:     decodeStock(node, stockKeys),
		ImageURL:  decodeString(node, imageKeys),
	}, true
}

func decodeString(node rawNode, keys []string) string {
	for _, key := range keys {
		raw, ok := node[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		return value
	}
	return ""
}

func decodePrice(node rawNode, keys []string) decimal.Decimal {
	for _, key := range keys {
		raw, ok := node[key]
		if !ok {
			continue
		}
		// decimal accepts both quoted and bare numeric JSON.
		var value decimal.Decimal
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		return value
	}
	return decimal.Zero
}

// decodeStock normalizes the stock value across the encodings seen in the
// export: integer, 64-bit integer, floating number, and numeric string.
// Missing or unparseable values collapse to zero.
func decodeStock(node rawNode, keys []string) int {
	for _, key := range keys {
		raw, ok := node[key]
		if !ok {
			continue
		}
		if stock, ok := parseStockValue(raw); ok {
			return stock
		}
	}
	return 0
}

func parseStockValue(raw json.RawMessage) (int, bool) {
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if v, err := number.Int64(); err == nil {
			return clampStock(v), true
		}
		if f, err := number.Float64(); err == nil {
			return clampStock(int64(f)), true
		}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, false
		}
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return clampStock(v), true
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return clampStock(int64(f)), true
		}
	}
	return 0, false
}

func clampStock(v int64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
