package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesense/backend/internal/domain"
)

func TestCreateOrder(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)

	items := []domain.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 2500},
		{ProductID: 3, Quantity: 1, Price: 9500},
	}

	order, err := svc.Create(context.Background(), 42, items)
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, int64(42), order.UserID)
	assert.Equal(t, 14500.0, order.Total)
	assert.Equal(t, "Pending", order.StatusLabel)
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrderRejectsEmpty(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{})

	_, err := svc.Create(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(context.Background(), 42, []domain.OrderItem{{ProductID: 1, Quantity: 0, Price: 100}})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewOrderService(repo)

	order, err := svc.Create(context.Background(), 1, []domain.OrderItem{{ProductID: 1, Quantity: 1, Price: 100}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "Delivered")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", updated.StatusLabel)

	_, err = svc.UpdateStatus(context.Background(), order.ID, "Teleported")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
