package ordering

import (
	"context"
	"net/http"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/order"
)

// Service simulates the order management system: it owns order state changes
// and publishes the corresponding events. It knows nothing about
// notifications.
type Service interface {
	ShipOrder(ctx context.Context, orderID string) (order.Order, error)
	ShipLineItem(ctx context.Context, orderID, itemID string) (order.Order, error)
}

type service struct {
	uow    domain.UnitOfWork
	orders order.Repository
	events event.Bus
}

func NewService(uow domain.UnitOfWork, orders order.Repository, events event.Bus) Service {
	return &service{
		uow:    uow,
		orders: orders,
		events: events,
	}
}

func (s *service) ShipOrder(ctx context.Context, orderID string) (order.Order, error) {
	var res order.Order

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		// Idempotent: shipping a shipped order republishes nothing.
		if current.Status == order.StatusShipped {
			res = current
			return nil
		}
		if current.Status == order.StatusCancelled || current.Status == order.StatusDelivered {
			return &domain.DomainError{
				Code:       domain.ErrorCodeInvalidStatus,
				Message:    "order cannot be shipped from status " + string(current.Status),
				HTTPStatus: http.StatusConflict,
			}
		}

		updated, err := s.orders.UpdateStatus(ctx, orderID, order.StatusShipped)
		if err != nil {
			return err
		}
		res = updated

		if s.events != nil {
			s.events.Publish(ctx, event.OrderStatusChanged{
				Header:         event.NewHeader(),
				OrderID:        updated.ID,
				CustomerID:     updated.CustomerID,
				PreviousStatus: string(current.Status),
				NewStatus:      string(order.StatusShipped),
			})
		}
		return nil
	})

	return res, err
}

func (s *service) ShipLineItem(ctx context.Context, orderID, itemID string) (order.Order, error) {
	var res order.Order

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		var previous order.ItemStatus
		found := false
		for _, it := range current.Items {
			if it.ID == itemID {
				previous = it.Status
				found = true
				break
			}
		}
		if !found {
			return &domain.DomainError{
				Code:       domain.ErrorCodeNotFound,
				Message:    "line item not found",
				HTTPStatus: http.StatusNotFound,
			}
		}
		if previous == order.ItemStatusShipped {
			res = current
			return nil
		}

		updated, err := s.orders.UpdateItemStatus(ctx, orderID, itemID, order.ItemStatusShipped)
		if err != nil {
			return err
		}
		res = updated

		if s.events != nil {
			s.events.Publish(ctx, event.LineItemStatusChanged{
				Header:         event.NewHeader(),
				OrderID:        updated.ID,
				CustomerID:     updated.CustomerID,
				LineItemID:     itemID,
				PreviousStatus: string(previous),
				NewStatus:      string(order.ItemStatusShipped),
			})
		}
		return nil
	})

	return res, err
}
