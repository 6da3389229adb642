package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"gorm.io/gorm"
)

// Shop is the buyer-facing view of a seller.
type Shop struct {
	SellerID string `json:"sellerId"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

type catalogLoader interface {
	FindCatalog(ctx context.Context, sellerID string) (*models.SellerCatalog, error)
	ListSellers(ctx context.Context) ([]models.Seller, error)
}

// Service exposes shop browsing and stock resolution.
type Service interface {
	ListShops(ctx context.Context) ([]Shop, error)
	ListProducts(ctx context.Context, sellerID string) ([]Product, error)
	GetProduct(ctx context.Context, sellerID, productID string) (*Product, error)
	ResolveStock(ctx context.Context, sellerID, productID string) (int, error)
}

type service struct {
	repo catalogLoader
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo catalogLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListShops(ctx context.Context) ([]Shop, error) {
	sellers, err := s.repo.ListSellers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sellers")
	}
	shops := make([]Shop, 0, len(sellers))
	for _, seller := range sellers {
		name := seller.ShopName
		if name == "" {
			name = seller.Name
		}
		shops = append(shops, Shop{
			SellerID: seller.UID,
			Name:     name,
			PhotoURL: seller.PhotoURL,
		})
	}
	return shops, nil
}

func (s *service) ListProducts(ctx context.Context, sellerID string) ([]Product, error) {
	node, err := s.loadProductsNode(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(node))
	for productID, raw := range node {
		product, ok := decodeProduct(sellerID, productID, raw)
		if !ok {
			// skip nodes that are not objects; the export contains stray scalars
			continue
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, sellerID, productID string) (*Product, error) {
	node, err := s.loadProductsNode(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	raw, ok := node[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product, ok := decodeProduct(sellerID, productID, raw)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &product, nil
}

// ResolveStock returns the authoritative stock ceiling for a product.
// Missing products and unparseable stock values resolve to zero; only fetch
// failures surface as errors so callers can apply their cached-ceiling
// fallback.
func (s *service) ResolveStock(ctx context.Context, sellerID, productID string) (int, error) {
	node, err := s.loadProductsNode(ctx, sellerID)
	if err != nil {
		return 0, err
	}
	raw, ok := node[productID]
	if !ok {
		return 0, nil
	}
	var fields rawNode
	if err := json.Unmarshal(raw, &fields); err != nil {
		return 0, nil
	}
	return decodeStock(fields, stockKeys), nil
}

func (s *service) loadProductsNode(ctx context.Context, sellerID string) (map[string]json.RawMessage, error) {
	if strings.TrimSpace(sellerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	record, err := s.repo.FindCatalog(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop has no catalog")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	node, ok := productsNode(record.Doc)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop has no products")
	}
	return node, nil
}
