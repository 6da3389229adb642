package checkout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mlisondra/tindahan-backend/internal/profiles"
	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"github.com/mlisondra/tindahan-backend/pkg/enums"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

type stubCart struct {
	lines       []types.CartLine
	snapErr     error
	removeErr   error
	removedIDs  []string
	removeCalls int
}

func (c *stubCart) Snapshot(context.Context, string) ([]types.CartLine, error) {
	if c.snapErr != nil {
		return nil, c.snapErr
	}
	return c.lines, nil
}

func (c *stubCart) RemoveLines(_ context.Context, _ string, productIDs []string) error {
	c.removeCalls++
	if c.removeErr != nil {
		return c.removeErr
	}
	c.removedIDs = append(c.removedIDs, productIDs...)
	return nil
}

type stubProfiles struct {
	buyer       *profiles.BuyerProfile
	buyerErr    error
	sellerNames map[string]string
}

func (p *stubProfiles) BuyerProfile(_ context.Context, uid string) (*profiles.BuyerProfile, error) {
	if p.buyerErr != nil {
		return nil, p.buyerErr
	}
	if p.buyer != nil {
		return p.buyer, nil
	}
	return &profiles.BuyerProfile{UID: uid, Name: "Unknown"}, nil
}

func (p *stubProfiles) SellerDisplayName(_ context.Context, uid string) string {
	if name, ok := p.sellerNames[uid]; ok {
		return name
	}
	return "Unknown"
}

type stubOrders struct {
	mu      sync.Mutex
	created []*models.Order
	failFor map[string]error
}

func (o *stubOrders) Create(_ context.Context, record *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.failFor[record.SellerID]; ok {
		return err
	}
	o.created = append(o.created, record)
	return nil
}

func newCheckoutService(t *testing.T, cart cartAccess, prof profileResolver, orders orderWriter) Service {
	t.Helper()
	svc, err := NewService(cart, prof, orders, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func twoSellerCart() []types.CartLine {
	return []types.CartLine{
		{ProductID: "p1", SellerID: "s1", ProductName: "Rice", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		{ProductID: "p2", SellerID: "s1", ProductName: "Eggs", UnitPrice: decimal.NewFromInt(50), Quantity: 1},
		{ProductID: "p3", SellerID: "s2", ProductName: "Milk", UnitPrice: decimal.NewFromInt(80), Quantity: 3},
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	svc := newCheckoutService(t, &stubCart{}, &stubProfiles{}, &stubOrders{})

	_, err := svc.Checkout(context.Background(), "  ")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err.Error() != "user not logged in" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCheckoutEmptyCartIsPreconditionFailure(t *testing.T) {
	svc := newCheckoutService(t, &stubCart{}, &stubProfiles{}, &stubOrders{})

	_, err := svc.Checkout(context.Background(), "b1")
	if !pkgerrors.HasCode(err, pkgerrors.CodePrecondition) {
		t.Fatalf("expected precondition failure, got %v", err)
	}
}

func TestCheckoutCreatesOneOrderPerSeller(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart()}
	prof := &stubProfiles{
		buyer:       &profiles.BuyerProfile{UID: "b1", Name: "Juan", Address: "Quezon City"},
		sellerNames: map[string]string{"s1": "Maria's", "s2": "Pedro's"},
	}
	orders := &stubOrders{}
	svc := newCheckoutService(t, cart, prof, orders)

	result, err := svc.Checkout(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.Orders) != 2 || len(result.Failed) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.CartCleared {
		t.Fatal("expected cart cleared")
	}

	if len(orders.created) != 2 {
		t.Fatalf("expected 2 orders written, got %d", len(orders.created))
	}
	bySeller := map[string]*models.Order{}
	for _, o := range orders.created {
		bySeller[o.SellerID] = o
	}
	s1 := bySeller["s1"]
	if s1 == nil {
		t.Fatal("missing order for s1")
	}
	if s1.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want pending", s1.Status)
	}
	if s1.BuyerName != "Juan" || s1.BuyerAddress != "Quezon City" || s1.SellerName != "Maria's" {
		t.Fatalf("unexpected identity fields: %+v", s1)
	}
	// 2*100 + 1*50
	if !s1.TotalPrice.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("s1 total = %s, want 250", s1.TotalPrice)
	}
	if s1.ID == "" || bySeller["s2"].ID == s1.ID {
		t.Fatal("orders must have distinct non-empty ids")
	}

	sort.Strings(cart.removedIDs)
	want := []string{"p1", "p2", "p3"}
	if len(cart.removedIDs) != 3 {
		t.Fatalf("removed ids = %v, want %v", cart.removedIDs, want)
	}
	for i, id := range want {
		if cart.removedIDs[i] != id {
			t.Fatalf("removed ids = %v, want %v", cart.removedIDs, want)
		}
	}
}

func TestCheckoutDefaultsMissingBuyerProfile(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart()[:1]}
	orders := &stubOrders{}
	svc := newCheckoutService(t, cart, &stubProfiles{}, orders)

	_, err := svc.Checkout(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	o := orders.created[0]
	if o.BuyerName != "Unknown" || o.BuyerAddress != "" || o.SellerName != "Unknown" {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

// A failing seller keeps its lines in the cart while the other sellers'
// orders are written and their lines removed. Clearing the entire cart after
// the first successful write would silently drop the failed group.
func TestCheckoutPartialFailureClearsOnlySuccessfulLines(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart()}
	orders := &stubOrders{failFor: map[string]error{"s1": fmt.Errorf("write refused")}}
	svc := newCheckoutService(t, cart, &stubProfiles{}, orders)

	result, err := svc.Checkout(context.Background(), "b1")
	if err != nil {
		t.Fatalf("partial failure should not fail checkout: %v", err)
	}
	if len(result.Orders) != 1 || result.Orders[0].SellerID != "s2" {
		t.Fatalf("unexpected placed orders: %+v", result.Orders)
	}
	if len(result.Failed) != 1 || result.Failed[0].SellerID != "s1" {
		t.Fatalf("unexpected failed groups: %+v", result.Failed)
	}

	// Only s2's line is cleared; s1's lines survive for a retry.
	if len(cart.removedIDs) != 1 || cart.removedIDs[0] != "p3" {
		t.Fatalf("removed ids = %v, want [p3]", cart.removedIDs)
	}
}

func TestCheckoutAllGroupsFail(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart()}
	orders := &stubOrders{failFor: map[string]error{
		"s1": fmt.Errorf("write refused"),
		"s2": fmt.Errorf("write refused"),
	}}
	svc := newCheckoutService(t, cart, &stubProfiles{}, orders)

	_, err := svc.Checkout(context.Background(), "b1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if cart.removeCalls != 0 {
		t.Fatal("nothing succeeded, nothing should be cleared")
	}
}

func TestCheckoutClearFailureStillReportsOrders(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart(), removeErr: fmt.Errorf("redis down")}
	orders := &stubOrders{}
	svc := newCheckoutService(t, cart, &stubProfiles{}, orders)

	result, err := svc.Checkout(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %+v", result.Orders)
	}
	if result.CartCleared {
		t.Fatal("cart clear failed, CartCleared must be false")
	}
}

func TestCheckoutBuyerProfileFailureBlocks(t *testing.T) {
	cart := &stubCart{lines: twoSellerCart()}
	prof := &stubProfiles{buyerErr: pkgerrors.New(pkgerrors.CodeDependency, "load buyer profile")}
	orders := &stubOrders{}
	svc := newCheckoutService(t, cart, prof, orders)

	_, err := svc.Checkout(context.Background(), "b1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no orders should be written when the profile load fails")
	}
}
