package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"gorm.io/gorm"
)

// BuyerProfile is the shipping identity stamped onto orders at checkout.
type BuyerProfile struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type profileLoader interface {
	FindBuyer(ctx context.Context, uid string) (*models.Buyer, error)
	FindSeller(ctx context.Context, uid string) (*models.Seller, error)
}

// Service resolves buyer and seller identities with the same defaulting the
// mobile client applied: a missing or blank profile never blocks checkout.
type Service interface {
	BuyerProfile(ctx context.Context, uid string) (*BuyerProfile, error)
	SellerDisplayName(ctx context.Context, uid string) string
}

type service struct {
	repo profileLoader
}

// NewService builds a profiles service backed by the provided repository.
func NewService(repo profileLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

// BuyerProfile resolves the buyer's shipping identity. A missing record or a
// blank name falls back to "Unknown"; the address defaults to empty. Only a
// real lookup failure is an error.
func (s *service) BuyerProfile(ctx context.Context, uid string) (*BuyerProfile, error) {
	record, err := s.repo.FindBuyer(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &BuyerProfile{UID: uid, Name: "Unknown"}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load buyer profile")
	}

	profile := &BuyerProfile{
		UID:     uid,
		Name:    record.Name,
		Address: record.Address,
		Phone:   record.Phone,
	}
	if profile.Name == "" {
		profile.Name = "Unknown"
	}
	return profile, nil
}

// SellerDisplayName resolves the name shown on order records: shop name
// first, the owner's name second, "Unknown" when neither exists. Lookup
// failures also yield "Unknown" so a profile outage cannot fail checkout.
func (s *service) SellerDisplayName(ctx context.Context, uid string) string {
	record, err := s.repo.FindSeller(ctx, uid)
	if err != nil {
		return "Unknown"
	}
	if record.ShopName != "" {
		return record.ShopName
	}
	if record.Name != "" {
		return record.Name
	}
	return "Unknown"
}
