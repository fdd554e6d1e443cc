package repositories

import (
	"time"

	"crewshift/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// NotificationRepository handles in-app notification database operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification, assigning the next per-member sequence
// number inside a transaction
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		err := tx.Model(&models.Notification{}).
			Where("member_id = ?", notification.MemberID).
			Select("COALESCE(MAX(notif_seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return err
		}
		notification.NotifSeq = int(maxSeq) + 1
		return tx.Create(notification).Error
	})
}

// ListByMember returns a member's notifications, newest first
func (r *NotificationRepository) ListByMember(memberID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("member_id = ?", memberID).
		Order("notif_seq DESC").
		Find(&notifications).Error
	return notifications, err
}

// GetByMemberAndSeq returns one notification by its per-member sequence
func (r *NotificationRepository) GetByMemberAndSeq(memberID uint, seq int) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.
		Where("member_id = ? AND notif_seq = ?", memberID, seq).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkViewed stamps the view time of a notification if not already set
func (r *NotificationRepository) MarkViewed(memberID uint, seq int, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("member_id = ? AND notif_seq = ? AND view_time IS NULL", memberID, seq).
		Update("view_time", at).Error
}
