package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlisondra/tindahan-backend/pkg/db/models"
	"github.com/mlisondra/tindahan-backend/pkg/enums"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"gorm.io/gorm"
)

type orderStore interface {
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) error
}

// Service exposes order history and status transitions. Order creation
// happens exclusively through checkout.
type Service interface {
	GetOrder(ctx context.Context, buyerID, orderID string) (*models.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	ListForSeller(ctx context.Context, sellerID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo orderStore
}

// NewService builds an orders service backed by the provided repository.
func NewService(repo orderStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// GetOrder loads an order and checks the caller owns it.
func (s *service) GetOrder(ctx context.Context, buyerID, orderID string) (*models.Order, error) {
	record, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if record.BuyerID != buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another buyer")
	}
	return record, nil
}

func (s *service) ListForBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	rows, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return rows, nil
}

func (s *service) ListForSeller(ctx context.Context, sellerID string) ([]models.Order, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller orders")
	}
	return rows, nil
}

// UpdateStatus applies a status transition after validating it against the
// order lifecycle.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("invalid order status %q", status))
	}

	record, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot move order from %s to %s", record.Status, status)).
			WithDetails(map[string]any{"from": record.Status, "to": status})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	record.Status = status
	return record, nil
}

func (s *service) load(ctx context.Context, orderID string) (*models.Order, error) {
	record, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return record, nil
}
