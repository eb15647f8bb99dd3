package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

type CommentService struct {
	DB *gorm.DB
}

func (s *CommentService) ListByTicket(ctx context.Context, ticketID uint) ([]models.Comment, error) {
	var ticket models.Ticket
	if err := s.DB.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket", "Ticket not found with id: %d", ticketID)
		}
		return nil, err
	}
	var comments []models.Comment
	if err := s.DB.WithContext(ctx).Where("ticket_id = ?", ticketID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment", "Comment not found with id: %d", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Create(ctx context.Context, caller security.Principal, ticketID uint, text string) (*models.Comment, error) {
	var ticket models.Ticket
	if err := s.DB.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket", "Ticket not found with id: %d", ticketID)
		}
		return nil, err
	}
	comment := models.Comment{
		TicketID: ticketID,
		UserID:   caller.UserID,
		Text:     text,
	}
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update rewrites the comment text. Ownership is checked here, not in the
// route policy, because the owning id is only known after loading the row.
func (s *CommentService) Update(ctx context.Context, caller security.Principal, id uint, text string) (*models.Comment, error) {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, caller, comment, "update"); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(comment).Update("text", text).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, caller security.Principal, id uint) error {
	comment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, caller, comment, "delete"); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(comment).Error
}

func (s *CommentService) checkOwnership(ctx context.Context, caller security.Principal, comment *models.Comment, action string) error {
	if caller.IsAdmin() || comment.UserID == caller.UserID {
		return nil
	}
	logging.FromContext(ctx).Warn("comment ownership check failed",
		"caller_id", caller.UserID, "action", action,
		"comment_id", comment.ID, "owner_id", comment.UserID)
	return apperr.AccessDenied("User does not have permission to %s this comment", action)
}
