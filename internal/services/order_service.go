package services

import (
	"context"

	"ZeeCrownAPI/internal/model"
	"ZeeCrownAPI/internal/repository"
)

type OrderService struct {
	Orders *repository.OrderRepository
}

func NewOrderService(orders *repository.OrderRepository) *OrderService {
	return &OrderService{Orders: orders}
}

func (s *OrderService) List(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.Orders.GetByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (*model.Order, []model.OrderItem, error) {
	order, err := s.Orders.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Orders.GetItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}
