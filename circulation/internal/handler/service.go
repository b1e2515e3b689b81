package handler

import (
	"context"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CirculationService interface {
	Issue(ctx context.Context, borrowerID int64, barcode string) (model.Loan, error)
	Return(ctx context.Context, borrowerID int64, barcode string) (model.Loan, error)
	IsAvailable(ctx context.Context, barcode string) (bool, error)
	Search(ctx context.Context, filter model.ItemFilter, key model.SortKey, order model.SortOrder) ([]model.Item, error)

	Request(ctx context.Context, borrowerID int64, barcode string) (model.Reservation, error)
	Cancel(ctx context.Context, borrowerID, reservationID int64) error
	ListPending(ctx context.Context, borrowerID int64) ([]model.Reservation, error)
	ListNotified(ctx context.Context) ([]model.Reservation, error)

	Points(ctx context.Context, borrowerID int64) (int64, error)

	RecommendFor(ctx context.Context, borrowerID int64, limit int) (model.Recommendations, error)
	Discover(ctx context.Context, limit int) (model.Discover, error)
	Overview(ctx context.Context) (model.Overview, error)
}

var _ CirculationService = (*service.Service)(nil)
