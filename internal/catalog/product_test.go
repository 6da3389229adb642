package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductsNodeCasingFallback(t *testing.T) {
	t.Parallel()

	upper := json.RawMessage(`{"Products":{"p1":{"Name":"Rice"}}}`)
	if node, ok := productsNode(upper); !ok || len(node) != 1 {
		t.Fatalf("expected primary casing to resolve, got ok=%v len=%d", ok, len(node))
	}

	lower := json.RawMessage(`{"products":{"p1":{"name":"Rice"}}}`)
	if node, ok := productsNode(lower); !ok || len(node) != 1 {
		t.Fatalf("expected lowercase fallback to resolve, got ok=%v len=%d", ok, len(node))
	}

	if _, ok := productsNode(json.RawMessage(`{"Inventory":{}}`)); ok {
		t.Fatal("unexpected resolution for unrelated node")
	}
	if _, ok := productsNode(nil); ok {
		t.Fatal("empty document must not resolve")
	}
}

func TestDecodeStockEncodings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node string
		want int
	}{
		{"integer", `{"Stock": 7}`, 7},
		{"long", `{"Stock": 2147483650}`, 2147483650},
		{"float", `{"Stock": 5.0}`, 5},
		{"numeric string", `{"Stock": "12"}`, 12},
		{"float string", `{"stock": "3.0"}`, 3},
		{"lowercase key", `{"stock": 4}`, 4},
		{"quantity key", `{"quantity": 9}`, 9},
		{"missing", `{"Name": "x"}`, 0},
		{"garbage string", `{"Stock": "plenty"}`, 0},
		{"negative clamps", `{"Stock": -3}`, 0},
		{"null", `{"Stock": null}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var node rawNode
			if err := json.Unmarshal([]byte(tc.node), &node); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if got := decodeStock(node, stockKeys); got != tc.want {
				t.Fatalf("decodeStock(%s) = %d, want %d", tc.node, got, tc.want)
			}
		})
	}
}

func TestDecodeProductFieldFallbacks(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{"name":"Dried Mango","price":"4.50","quantity":"8","imageUrl":"https://cdn/img.png"}`)
	product, ok := decodeProduct("s1", "p1", raw)
	if !ok {
		t.Fatal("expected product to decode")
	}
	if product.Name != "Dried Mango" {
		t.Fatalf("unexpected name %q", product.Name)
	}
	if !product.Price.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("unexpected price %s", product.Price)
	}
	if product.Stock != 8 {
		t.Fatalf("unexpected stock %d", product.Stock)
	}
	if product.ImageURL != "https://cdn/img.png" {
		t.Fatalf("unexpected image %q", product.ImageURL)
	}

	if _, ok := decodeProduct("s1", "p2", json.RawMessage(`"not an object"`)); ok {
		t.Fatal("scalar nodes must not decode")
	}
}
