package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"desideri.com/pugliaclub/internal/entity"
	notifRepo "desideri.com/pugliaclub/internal/modules/notification/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Channel returns the Redis pub/sub channel carrying a member's live
// notifications.
func Channel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	Notify(ctx context.Context, userID uuid.UUID, kind, title, message string)
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if notification.Type == "" {
		notification.Type = entity.NotificationInfo
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			if err := s.redisClient.Publish(ctx, Channel(notification.UserID.String()), payload).Err(); err != nil {
				log.Warn().Err(err).Str("user_id", notification.UserID.String()).Msg("failed to publish notification")
			}
		}
	}

	return nil
}

// Notify is the fire-and-log variant used by workflows where a failed
// notification must not undo the main operation.
func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, kind, title, message string) {
	err := s.CreateNotification(ctx, &entity.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("title", title).Msg("failed to create notification")
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
