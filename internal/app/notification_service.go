package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
)

// NotificationService persists and serves notifications. It is the
// concrete Emitter every other service fires events through.
type NotificationService struct {
	repo   notification.Repository
	logger *logrus.Logger
}

func NewNotificationService(repo notification.Repository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Emit stores one notification. It never reports failure to the caller:
// a lost notification must not roll back the state change that produced
// it. Emitting to the actor themselves is a silent no-op.
func (s *NotificationService) Emit(ctx context.Context, recipient common.UUID, actor *common.UUID, verb, message string, subject notification.Ref, target *notification.Ref) {
	if actor != nil && *actor == recipient {
		return
	}
	n := notification.Notification{
		RecipientID: recipient,
		ActorID:     actor,
		Verb:        verb,
		Message:     message,
		Subject:     subject,
		Target:      target,
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"recipient": recipient,
			"verb":      verb,
		}).Error("failed to emit notification")
	}
}

func (s *NotificationService) List(ctx context.Context, recipientID common.UUID, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
