package billing

import (
	"context"

	"github.com/google/uuid"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/order"
)

// Service simulates the payment system; it only publishes payment outcomes.
type Service interface {
	// RecordFailure publishes a PaymentFailed event for an order and returns
	// the generated payment id.
	RecordFailure(ctx context.Context, orderID, reason string, attempt int) (string, error)
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

func (s *service) RecordFailure(ctx context.Context, orderID, reason string, attempt int) (string, error) {
	var paymentID string

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		ord, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		paymentID = uuid.NewString()
		if s.events != nil {
			s.events.Publish(ctx, event.PaymentFailed{
				Header:     event.NewHeader(),
				PaymentID:  paymentID,
				OrderID:    ord.ID,
				CustomerID: ord.CustomerID,
				Amount:     ord.Total,
				Reason:     reason,
				Attempt:    attempt,
			})
		}
		return nil
	})

	return paymentID, err
}
