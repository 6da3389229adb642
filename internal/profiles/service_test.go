package profiles

import (
	"context"
	"fmt"
	"testing"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubProfileRepo struct {
	buyers    map[string]*models.Buyer
	sellers   map[string]*models.Seller
	buyerErr  error
	sellerErr error
}

func (s *stubProfileRepo) FindBuyer(_ context.Context, uid string) (*models.Buyer, error) {
	if s.buyerErr != nil {
		return nil, s.buyerErr
	}
	b, ok := s.buyers[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubProfileRepo) FindSeller(_ context.Context, uid string) (*models.Seller, error) {
	if s.sellerErr != nil {
		return nil, s.sellerErr
	}
	r, ok := s.sellers[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func TestBuyerProfileReturnsStoredFields(t *testing.T) {
	repo := &stubProfileRepo{buyers: map[string]*models.Buyer{
		"b1": {UID: "b1", Name: "Juan", Address: "Quezon City", Phone: "0917"},
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	profile, err := svc.BuyerProfile(context.Background(), "b1")
	if err != nil {
		t.Fatalf("BuyerProfile: %v", err)
	}
	if profile.Name != "Juan" || profile.Address != "Quezon City" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestBuyerProfileDefaultsWhenMissing(t *testing.T) {
	svc, err := NewService(&stubProfileRepo{buyers: map[string]*models.Buyer{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	profile, err := svc.BuyerProfile(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("BuyerProfile: %v", err)
	}
	if profile.Name != "Unknown" || profile.Address != "" {
		t.Fatalf("unexpected defaults: %+v", profile)
	}
}

func TestBuyerProfileBlankNameDefaultsToUnknown(t *testing.T) {
	repo := &stubProfileRepo{buyers: map[string]*models.Buyer{
		"b1": {UID: "b1", Address: "Cebu"},
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	profile, err := svc.BuyerProfile(context.Background(), "b1")
	if err != nil {
		t.Fatalf("BuyerProfile: %v", err)
	}
	if profile.Name != "Unknown" || profile.Address != "Cebu" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestBuyerProfileLookupFailure(t *testing.T) {
	svc, err := NewService(&stubProfileRepo{buyerErr: fmt.Errorf("db down")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.BuyerProfile(context.Background(), "b1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSellerDisplayNamePrecedence(t *testing.T) {
	repo := &stubProfileRepo{sellers: map[string]*models.Seller{
		"shop":  {UID: "shop", Name: "Maria", ShopName: "Maria's Sari-Sari"},
		"named": {UID: "named", Name: "Maria"},
		"blank": {UID: "blank"},
	}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	cases := map[string]string{
		"shop":    "Maria's Sari-Sari",
		"named":   "Maria",
		"blank":   "Unknown",
		"missing": "Unknown",
	}
	for uid, want := range cases {
		if got := svc.SellerDisplayName(ctx, uid); got != want {
			t.Fatalf("SellerDisplayName(%q) = %q, want %q", uid, got, want)
		}
	}
}

func TestSellerDisplayNameLookupFailureDefaultsToUnknown(t *testing.T) {
	svc, err := NewService(&stubProfileRepo{sellerErr: fmt.Errorf("db down")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if got := svc.SellerDisplayName(context.Background(), "s1"); got != "Unknown" {
		t.Fatalf("expected Unknown on lookup failure, got %q", got)
	}
}
