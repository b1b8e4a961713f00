package notification

import "context"

// Service delivers user-facing notifications. Notify is fire-and-forget:
// enqueue failures are logged, never propagated to the caller, so a
// notification problem can never fail a lifecycle transition.
type Service interface {
	Notify(req CreateNotificationRequest)
	NotifyMany(recipientIDs []string, req CreateNotificationRequest)
	List(ctx context.Context, recipientID string) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	Shutdown()
}
