package notifsvc_test

import (
	"context"
	"testing"

	"github.com/Diba-Dev/leafora-marketplace/model"
	notifsvc "github.com/Diba-Dev/leafora-marketplace/service/notification"
)

type repoMock struct {
	listByReceiverFn func(ctx context.Context, receiverID int64) ([]model.Notification, error)
	clearDoneFn      func(ctx context.Context, receiverID int64) (int64, error)
}

func (m *repoMock) ListByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error) {
	return m.listByReceiverFn(ctx, receiverID)
}
func (m *repoMock) ClearDone(ctx context.Context, receiverID int64) (int64, error) {
	return m.clearDoneFn(ctx, receiverID)
}

func TestInbox(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		listByReceiverFn: func(ctx context.Context, receiverID int64) ([]model.Notification, error) {
			if receiverID != 7 {
				t.Fatalf("want receiver 7, got %d", receiverID)
			}
			return []model.Notification{{ID: 2}, {ID: 1}}, nil
		},
	}
	out, err := notifsvc.New(m).Inbox(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 notifications, got %d", len(out))
	}
}

func TestClearDone(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		clearDoneFn: func(ctx context.Context, receiverID int64) (int64, error) {
			return 3, nil
		},
	}
	n, err := notifsvc.New(m).ClearDone(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 cleared, got %d", n)
	}
}
