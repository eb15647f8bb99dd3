package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type AssignmentService struct {
	DB *gorm.DB
}

func (s *AssignmentService) GetAll(ctx context.Context) ([]models.TicketAssignment, error) {
	var assignments []models.TicketAssignment
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id uint) (*models.TicketAssignment, error) {
	var assignment models.TicketAssignment
	if err := s.DB.WithContext(ctx).First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment", "Assignment not found with id: %d", id)
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *AssignmentService) Create(ctx context.Context, ticketID, userID uint) (*models.TicketAssignment, error) {
	var ticket models.Ticket
	if err := s.DB.WithContext(ctx).First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket", "Ticket not found with id: %d", ticketID)
		}
		return nil, err
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", "User not found with id: %d", userID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.TicketAssignment{}).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("User %d is already assigned to ticket %d", userID, ticketID)
	}

	assignment := models.TicketAssignment{TicketID: ticketID, UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id uint) error {
	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(assignment).Error
}

func (s *AssignmentService) DeleteByTicketAndUser(ctx context.Context, ticketID, userID uint) error {
	res := s.DB.WithContext(ctx).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Delete(&models.TicketAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("assignment", "Assignment not found for ticket %d and user %d", ticketID, userID)
	}
	return nil
}
