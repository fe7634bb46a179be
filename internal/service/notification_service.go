package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/desertbloom-landscaping/backoffice-api/internal/domain"
	"github.com/desertbloom-landscaping/backoffice-api/internal/mapper"
	"github.com/desertbloom-landscaping/backoffice-api/internal/repository"
)

// NotificationService handles business logic for back-office notifications
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create records a notification
func (s *NotificationService) Create(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.NotificationDTO, error) {
	notification := &domain.Notification{
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Read:       false,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("notification created",
		zap.String("notificationID", notification.ID.String()),
		zap.String("type", string(req.Type)),
	)

	dto := mapper.ToNotificationDTO(notification)
	return &dto, nil
}

// List returns notifications with pagination
func (s *NotificationService) List(
	ctx context.Context,
	page int,
	pageSize int,
	unreadOnly bool,
	notificationType string,
) (*domain.PaginatedResponse, error) {
	// Clamp page size
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	notifications, total, err := s.notificationRepo.List(ctx, page, pageSize, unreadOnly, notificationType)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notification)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetByID returns a notification by ID
func (s *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationDTO, error) {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	dto := mapper.ToNotificationDTO(notification)
	return &dto, nil
}

// MarkAsRead marks a notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}

	// Already read, nothing to do
	if notification.Read {
		return nil
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	s.logger.Debug("notification marked as read",
		zap.String("notificationID", notificationID.String()),
	)

	return nil
}

// MarkAllAsRead marks every unread notification as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	s.logger.Info("all notifications marked as read")
	return nil
}

// GetUnreadCount returns the count of unread notifications
func (s *NotificationService) GetUnreadCount(ctx context.Context) (*domain.UnreadCountDTO, error) {
	count, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &domain.UnreadCountDTO{Count: count}, nil
}
