package cart

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mlisondra/tindahan-backend/internal/catalog"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
	"github.com/mlisondra/tindahan-backend/pkg/metrics"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

type stockResolver interface {
	ResolveStock(ctx context.Context, sellerID, productID string) (int, error)
}

// MutationResult reports the outcome of a successful cart mutation. Added
// carries the number of units actually added, which can be less than
// requested when remaining stock only partially covers the request.
type MutationResult struct {
	Added    int    `json:"added"`
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
}

// Service owns all cart mutation logic and stock-validation rules for one
// process. Mutating calls are serialized; every mutation is a whole-cart
// read-modify-write against the blob store.
type Service interface {
	AddToCart(ctx context.Context, buyerID string, product catalog.Product, quantity int) (*MutationResult, error)
	UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int, currentStock *int) (*MutationResult, error)
	RemoveFromCart(ctx context.Context, buyerID, productID string) error
	ClearCart(ctx context.Context, buyerID string) error
	RemoveLines(ctx context.Context, buyerID string, productIDs []string) error
	Snapshot(ctx context.Context, buyerID string) ([]types.CartLine, error)
	TotalPrice(ctx context.Context, buyerID string) (decimal.Decimal, error)
	ItemCount(ctx context.Context, buyerID string) (int, error)
}

type service struct {
	mu      sync.Mutex
	store   Store
	stock   stockResolver
	metrics *metrics.MarketplaceMetrics
	logg    *logger.Logger
}

// NewService builds a cart service backed by the provided store and resolver.
func NewService(store Store, stock stockResolver, m *metrics.MarketplaceMetrics, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock resolver required")
	}
	return &service{store: store, stock: stock, metrics: m, logg: logg}, nil
}

// AddToCart inserts a product or tops up an existing line. The product's
// stock is the authoritative ceiling for this attempt. When remaining room
// only covers part of the request, the available units are added and the
// operation still succeeds, reporting the partial count.
func (s *service) AddToCart(ctx context.Context, buyerID string, product catalog.Product, quantity int) (*MutationResult, error) {
	if err := requireBuyer(buyerID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if strings.TrimSpace(product.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		s.countOp("add", "error")
		return nil, err
	}

	stock := product.Stock
	line, exists := lines[product.ProductID]
	if !exists {
		if quantity > stock {
			s.countOp("add", "rejected")
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Not enough stock. Maximum available: %d", stock)).
				WithDetails(map[string]any{"max_stock": stock})
		}
		lines[product.ProductID] = types.CartLine{
			ProductID:   product.ProductID,
			SellerID:    product.SellerID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    quantity,
			ImageURL:    product.ImageURL,
			MaxStock:    stock,
		}
		if err := s.store.Save(ctx, buyerID, lines); err != nil {
			s.countOp("add", "error")
			return nil, err
		}
		s.countOp("add", "success")
		return &MutationResult{
			Added:    quantity,
			Quantity: quantity,
			Message:  fmt.Sprintf("Added %d to cart", quantity),
		}, nil
	}

	room := stock - line.Quantity
	switch {
	case quantity <= room:
		line.Quantity += quantity
		line.MaxStock = stock
		lines[product.ProductID] = line
		if err := s.store.Save(ctx, buyerID, lines); err != nil {
			s.countOp("add", "error")
			return nil, err
		}
		s.countOp("add", "success")
		return &MutationResult{
			Added:    quantity,
			Quantity: line.Quantity,
			Message:  fmt.Sprintf("Added %d to cart", quantity),
		}, nil

	case room > 0:
		// Partial fulfillment counts as success.
		line.Quantity += room
		line.MaxStock = stock
		lines[product.ProductID] = line
		if err := s.store.Save(ctx, buyerID, lines); err != nil {
			s.countOp("add", "error")
			return nil, err
		}
		s.countOp("add", "partial")
		return &MutationResult{
			Added:    room,
			Quantity: line.Quantity,
			Message:  fmt.Sprintf("Only %d more available. Added %d to cart.", room, room),
		}, nil

	default:
		s.countOp("add", "rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("Not enough stock. Maximum available: %d (already have %d in cart)", stock, line.Quantity)).
			WithDetails(map[string]any{"max_stock": stock, "in_cart": line.Quantity})
	}
}

// UpdateQuantity replaces a line's quantity. A non-positive quantity removes
// the line. When no fresh stock figure is supplied and the change is an
// increase, the resolver is consulted; if that fetch fails, validation
// degrades to the cached ceiling instead of blocking the change. Without any
// stock information the existing quantity is itself the ceiling.
func (s *service) UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int, currentStock *int) (*MutationResult, error) {
	if err := requireBuyer(buyerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		s.countOp("update", "error")
		return nil, err
	}

	if quantity <= 0 {
		delete(lines, productID)
		if err := s.store.Save(ctx, buyerID, lines); err != nil {
			s.countOp("update", "error")
			return nil, err
		}
		s.countOp("update", "removed")
		return &MutationResult{Message: "Item removed from cart"}, nil
	}

	line, exists := lines[productID]
	if !exists {
		s.countOp("update", "rejected")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Item not found in cart")
	}

	if currentStock == nil && quantity > line.Quantity {
		if resolved, err := s.stock.ResolveStock(ctx, line.SellerID, productID); err == nil {
			currentStock = &resolved
		} else if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "product_id", productID), "stock lookup failed, using cached ceiling")
		}
	}

	ceiling := line.MaxStock
	if currentStock != nil {
		ceiling = *currentStock
	} else if ceiling <= 0 {
		// No stock information at all: the existing quantity is the
		// ceiling, which prevents silent over-commit.
		ceiling = line.Quantity
	}

	if quantity > ceiling {
		s.countOp("update", "rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("Not enough stock. Maximum available: %d", ceiling)).
			WithDetails(map[string]any{"max_stock": ceiling})
	}

	line.Quantity = quantity
	if currentStock != nil {
		line.MaxStock = *currentStock
	}
	lines[productID] = line
	if err := s.store.Save(ctx, buyerID, lines); err != nil {
		s.countOp("update", "error")
		return nil, err
	}
	s.countOp("update", "success")
	return &MutationResult{Quantity: quantity, Message: "Quantity updated"}, nil
}

// RemoveFromCart deletes the line if present. Removing an absent line is not
// an error.
func (s *service) RemoveFromCart(ctx context.Context, buyerID, productID string) error {
	if err := requireBuyer(buyerID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		return err
	}
	delete(lines, productID)
	if err := s.store.Save(ctx, buyerID, lines); err != nil {
		return err
	}
	s.countOp("remove", "success")
	return nil
}

func (s *service) ClearCart(ctx context.Context, buyerID string) error {
	if err := requireBuyer(buyerID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, buyerID); err != nil {
		return err
	}
	s.countOp("clear", "success")
	return nil
}

// RemoveLines deletes the provided product lines in a single read-modify-write.
// Checkout uses this to clear only the lines that converted into orders.
func (s *service) RemoveLines(ctx context.Context, buyerID string, productIDs []string) error {
	if err := requireBuyer(buyerID); err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		return err
	}
	for _, id := range productIDs {
		delete(lines, id)
	}
	return s.store.Save(ctx, buyerID, lines)
}

// Snapshot returns the cart lines ordered by product id.
func (s *service) Snapshot(ctx context.Context, buyerID string) ([]types.CartLine, error) {
	if err := requireBuyer(buyerID); err != nil {
		return nil, err
	}

	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	out := make([]types.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (s *service) TotalPrice(ctx context.Context, buyerID string) (decimal.Decimal, error) {
	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		return decimal.Zero, err
	}
	return lines.TotalPrice(), nil
}

func (s *service) ItemCount(ctx context.Context, buyerID string) (int, error) {
	lines, err := s.store.Load(ctx, buyerID)
	if err != nil {
		return 0, err
	}
	return lines.ItemCount(), nil
}

func (s *service) countOp(operation, result string) {
	s.metrics.IncCartOp(operation, result)
}

func requireBuyer(buyerID string) error {
	if strings.TrimSpace(buyerID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer id is required")
	}
	return nil
}
