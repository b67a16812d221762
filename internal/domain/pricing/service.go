package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/event"
)

// Service simulates the pricing side of the catalog: it updates prices and
// publishes PriceChanged. All price-drop eligibility logic lives in the
// notification service, not here.
type Service interface {
	UpdatePrice(ctx context.Context, productID string, newPrice decimal.Decimal) (catalog.Product, error)
}

type service struct {
	uow     domain.UnitOfWork
	catalog catalog.Repository
	events  event.Bus
}

func NewService(uow domain.UnitOfWork, cat catalog.Repository, events event.Bus) Service {
	return &service{
		uow:     uow,
		catalog: cat,
		events:  events,
	}
}

func (s *service) UpdatePrice(ctx context.Context, productID string, newPrice decimal.Decimal) (catalog.Product, error) {
	var res catalog.Product

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if current.Price.Equal(newPrice) {
			res = current
			return nil
		}

		updated, err := s.catalog.UpdatePrice(ctx, productID, newPrice)
		if err != nil {
			return err
		}
		res = updated

		if s.events != nil {
			s.events.Publish(ctx, event.PriceChanged{
				Header:      event.NewHeader(),
				ProductID:   updated.ID,
				ProductName: updated.Name,
				OldPrice:    current.Price,
				NewPrice:    newPrice,
			})
		}
		return nil
	})

	return res, err
}
