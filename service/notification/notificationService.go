package notifsvc

import (
	"context"

	"github.com/Diba-Dev/leafora-marketplace/model"
	notifrepo "github.com/Diba-Dev/leafora-marketplace/repository/notification"
)

type Service interface {
	// Inbox lists the user's notifications, newest first.
	Inbox(ctx context.Context, userID int64) ([]model.Notification, error)
	// ClearDone removes the user's done notifications; pending ones stay.
	ClearDone(ctx context.Context, userID int64) (int64, error)
}

type service struct{ r notifrepo.Repo }

func New(r notifrepo.Repo) Service { return &service{r: r} }

func (s *service) Inbox(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.r.ListByReceiver(ctx, userID)
}

func (s *service) ClearDone(ctx context.Context, userID int64) (int64, error) {
	return s.r.ClearDone(ctx, userID)
}
