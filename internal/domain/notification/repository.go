package notification

import "context"

// Repository - interface for the notifications table
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, notificationID string) error
	DeleteByRecipient(ctx context.Context, recipientID string) error
}
