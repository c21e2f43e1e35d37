// internal/service/order_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository"
)

var (
	ErrEmptyOrder    = errors.New("no items in order")
	ErrUnknownStatus = errors.New("unknown order status")
)

type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Create places a new order for the given user. The total is recomputed from
// the item lines; a client-supplied total is ignored.
func (s *OrderService) Create(ctx context.Context, userID int64, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrEmptyOrder
		}
		total += item.Price * float64(item.Quantity)
	}

	order := &domain.Order{
		OrderNumber: uuid.NewString(),
		UserID:      userID,
		Items:       items,
		Total:       total,
		Status:      0,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	order.StatusLabel = domain.OrderStatusLabel(order.Status)
	log.Info().Str("order_number", order.OrderNumber).Int64("user_id", userID).Msg("order created")

	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, statusLabel string) (*domain.Order, error) {
	status, ok := domain.ParseOrderStatus(statusLabel)
	if !ok {
		return nil, ErrUnknownStatus
	}

	return s.repo.UpdateStatus(ctx, id, status)
}
