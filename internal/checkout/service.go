package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/mlisondra/tindahan-backend/internal/profiles"
	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"github.com/mlisondra/tindahan-backend/pkg/enums"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
	"github.com/mlisondra/tindahan-backend/pkg/metrics"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

type cartAccess interface {
	Snapshot(ctx context.Context, buyerID string) ([]types.CartLine, error)
	RemoveLines(ctx context.Context, buyerID string, productIDs []string) error
}

type profileResolver interface {
	BuyerProfile(ctx context.Context, uid string) (*profiles.BuyerProfile, error)
	SellerDisplayName(ctx context.Context, uid string) string
}

type orderWriter interface {
	Create(ctx context.Context, record *models.Order) error
}

// PlacedOrder summarizes one written order for the checkout response.
type PlacedOrder struct {
	OrderID    string          `json:"orderId"`
	SellerID   string          `json:"sellerId"`
	SellerName string          `json:"sellerName"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
}

// FailedGroup records a seller group whose order write failed. Its lines
// remain in the cart.
type FailedGroup struct {
	SellerID string `json:"sellerId"`
	Reason   string `json:"reason"`
}

// Result is the checkout outcome. Orders and Failed partition the cart's
// seller groups; CartCleared reports whether the successful groups' lines
// were removed from the cart afterwards.
type Result struct {
	Orders      []PlacedOrder `json:"orders"`
	Failed      []FailedGroup `json:"failed,omitempty"`
	CartCleared bool          `json:"cartCleared"`
}

// Service turns a cart into per-seller orders.
type Service interface {
	Checkout(ctx context.Context, buyerID string) (*Result, error)
}

type service struct {
	cart     cartAccess
	profiles profileResolver
	orders   orderWriter
	metrics  *metrics.MarketplaceMetrics
	logg     *logger.Logger
}

// NewService builds a checkout service over the cart, profiles, and orders
// components.
func NewService(cart cartAccess, profiles profileResolver, orders orderWriter, m *metrics.MarketplaceMetrics, logg *logger.Logger) (Service, error) {
	if cart == nil || profiles == nil || orders == nil {
		return nil, fmt.Errorf("cart, profiles, and orders components required")
	}
	return &service{cart: cart, profiles: profiles, orders: orders, metrics: m, logg: logg}, nil
}

// Checkout splits the cart by seller, writes one pending order per seller,
// and then clears exactly the lines whose orders were written. All writes
// are attempted regardless of individual failures; a failed group's lines
// stay in the cart so the buyer can retry without re-entering anything.
func (s *service) Checkout(ctx context.Context, buyerID string) (*Result, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not logged in")
	}

	lines, err := s.cart.Snapshot(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	buyer, err := s.profiles.BuyerProfile(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	groups := GroupBySeller(lines)
	outcomes := make([]error, len(groups))
	placed := make([]PlacedOrder, len(groups))

	var eg errgroup.Group
	for i, group := range groups {
		i, group := i, group
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = err
				return nil
			}
			order := s.buildOrder(ctx, buyer, group)
			if err := s.orders.Create(ctx, order); err != nil {
				outcomes[i] = err
				return nil
			}
			placed[i] = PlacedOrder{
				OrderID:    order.ID,
				SellerID:   order.SellerID,
				SellerName: order.SellerName,
				TotalPrice: order.TotalPrice,
				ItemCount:  order.Items.ItemCount(),
			}
			return nil
		})
	}
	// Goroutines report through outcomes, never through the group error.
	_ = eg.Wait()

	result := &Result{}
	var clearIDs []string
	var failures error
	for i, group := range groups {
		if outcomes[i] != nil {
			s.metrics.IncCheckoutOrder("failure")
			result.Failed = append(result.Failed, FailedGroup{
				SellerID: group.SellerID,
				Reason:   outcomes[i].Error(),
			})
			failures = multierr.Append(failures,
				fmt.Errorf("seller %s: %w", group.SellerID, outcomes[i]))
			continue
		}
		s.metrics.IncCheckoutOrder("success")
		result.Orders = append(result.Orders, placed[i])
		clearIDs = append(clearIDs, group.ProductIDs()...)
	}

	if len(result.Orders) == 0 {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "checkout failed")
	}

	// Clear only the lines that converted into orders; failed groups keep
	// theirs for a retry.
	if err := s.cart.RemoveLines(ctx, buyerID, clearIDs); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithBuyerID(ctx, buyerID), "orders written but cart lines not cleared")
		}
	} else {
		result.CartCleared = true
	}
	return result, nil
}

func (s *service) buildOrder(ctx context.Context, buyer *profiles.BuyerProfile, group SellerGroup) *models.Order {
	return &models.Order{
		ID:           uuid.NewString(),
		BuyerID:      buyer.UID,
		SellerID:     group.SellerID,
		Items:        group.Lines,
		TotalPrice:   group.Total(),
		Status:       enums.OrderStatusPending,
		BuyerName:    buyer.Name,
		BuyerAddress: buyer.Address,
		SellerName:   s.profiles.SellerDisplayName(ctx, group.SellerID),
	}
}
