package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type TicketStatusService struct {
	DB *gorm.DB
}

func (s *TicketStatusService) GetAll(ctx context.Context) ([]models.TicketStatus, error) {
	var statuses []models.TicketStatus
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *TicketStatusService) GetByID(ctx context.Context, id uint) (*models.TicketStatus, error) {
	var status models.TicketStatus
	if err := s.DB.WithContext(ctx).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket_status", "Ticket status not found with id: %d", id)
		}
		return nil, err
	}
	return &status, nil
}

func (s *TicketStatusService) Create(ctx context.Context, name string) (*models.TicketStatus, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.TicketStatus{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("Ticket status with name %s already exists!", name)
	}
	status := models.TicketStatus{Name: name}
	if err := s.DB.WithContext(ctx).Create(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *TicketStatusService) Delete(ctx context.Context, id uint) error {
	status, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	var inUse int64
	if err := s.DB.WithContext(ctx).Model(&models.Ticket{}).Where("status_id = ?", status.ID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.BadRequest("Ticket status %s is used by %d ticket(s) and cannot be deleted", status.Name, inUse)
	}
	return s.DB.WithContext(ctx).Delete(status).Error
}
