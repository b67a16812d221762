package handler

import (
	"go.uber.org/zap"

	"notifyservice/internal/domain/billing"
	"notifyservice/internal/domain/correlation"
	"notifyservice/internal/domain/ordering"
	"notifyservice/internal/domain/pricing"
	"notifyservice/internal/infrastructure/channels"
	"notifyservice/internal/infrastructure/inmem"
)

type Handler struct {
	OrderingSvc ordering.Service
	PricingSvc  pricing.Service
	BillingSvc  billing.Service
	Hub         *channels.Hub
	EventLog    *inmem.Bus
	Tracker     *correlation.Tracker
	Log         *zap.Logger
}

func New(
	orderingSvc ordering.Service,
	pricingSvc pricing.Service,
	billingSvc billing.Service,
	hub *channels.Hub,
	eventLog *inmem.Bus,
	tracker *correlation.Tracker,
	log *zap.Logger,
) *Handler {
	return &Handler{
		OrderingSvc: orderingSvc,
		PricingSvc:  pricingSvc,
		BillingSvc:  billingSvc,
		Hub:         hub,
		EventLog:    eventLog,
		Tracker:     tracker,
		Log:         log,
	}
}
