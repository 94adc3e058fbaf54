package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	n.ID = common.NewUUID()
	n.CreatedAt = time.Now().UTC()
	var targetKind notification.RefKind
	var targetID *common.UUID
	if n.Target != nil {
		targetKind = n.Target.Kind
		targetID = &n.Target.ID
	}
	var subjectID *common.UUID
	if !n.Subject.ID.IsZero() {
		subjectID = &n.Subject.ID
	}
	_, err := querier(ctx, r.db).ExecContext(ctx, `INSERT INTO notifications (id, recipient_id, actor_id, verb, message, subject_kind, subject_id, target_kind, target_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.RecipientID, n.ActorID, n.Verb, n.Message, n.Subject.Kind, subjectID, targetKind, targetID, n.IsRead, n.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID common.UUID, unreadOnly bool) ([]notification.Notification, error) {
	query := `SELECT id, recipient_id, actor_id, verb, message, subject_kind, subject_id, target_kind, target_id, is_read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC`
	if unreadOnly {
		query = `SELECT id, recipient_id, actor_id, verb, message, subject_kind, subject_id, target_kind, target_id, is_read, created_at
		FROM notifications WHERE recipient_id = $1 AND NOT is_read ORDER BY created_at DESC`
	}
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var subjectID, targetID sql.NullString
		var targetKind notification.RefKind
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.ActorID, &n.Verb, &n.Message, &n.Subject.Kind, &subjectID, &targetKind, &targetID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		if subjectID.Valid {
			n.Subject.ID = common.UUID(subjectID.String)
		}
		if targetKind != "" && targetID.Valid {
			n.Target = &notification.Ref{Kind: targetKind, ID: common.UUID(targetID.String)}
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification read", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND NOT is_read`, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notifications read", err)
	}
	return nil
}
