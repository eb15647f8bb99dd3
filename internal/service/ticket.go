package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type TicketService struct {
	DB *gorm.DB
}

type CreateTicketInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DepartmentID uint   `json:"department_id"`
	StatusID     uint   `json:"status_id"`
}

type PatchTicketInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DepartmentID *uint   `json:"department_id"`
	StatusID     *uint   `json:"status_id"`
}

func (s *TicketService) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.DB.WithContext(ctx).First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket", "Ticket not found with id: %d", id)
		}
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketService) List(ctx context.Context, offset, limit int) (int64, []models.Ticket, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Ticket{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	var tickets []models.Ticket
	if err := s.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		return 0, nil, err
	}
	return total, tickets, nil
}

func (s *TicketService) Create(ctx context.Context, userID uint, in CreateTicketInput) (*models.Ticket, error) {
	if err := s.checkRefs(ctx, in.DepartmentID, in.StatusID); err != nil {
		return nil, err
	}
	ticket := models.Ticket{
		Title:        in.Title,
		Description:  in.Description,
		UserID:       userID,
		DepartmentID: in.DepartmentID,
		StatusID:     in.StatusID,
	}
	if err := s.DB.WithContext(ctx).Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id uint, in CreateTicketInput) (*models.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in.DepartmentID, in.StatusID); err != nil {
		return nil, err
	}
	ticket.Title = in.Title
	ticket.Description = in.Description
	ticket.DepartmentID = in.DepartmentID
	ticket.StatusID = in.StatusID
	if err := s.DB.WithContext(ctx).Save(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) Patch(ctx context.Context, id uint, in PatchTicketInput) (*models.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		ticket.Title = *in.Title
	}
	if in.Description != nil {
		ticket.Description = *in.Description
	}
	if in.DepartmentID != nil {
		if err := s.checkDepartment(ctx, *in.DepartmentID); err != nil {
			return nil, err
		}
		ticket.DepartmentID = *in.DepartmentID
	}
	if in.StatusID != nil {
		if err := s.checkStatus(ctx, *in.StatusID); err != nil {
			return nil, err
		}
		ticket.StatusID = *in.StatusID
	}
	if err := s.DB.WithContext(ctx).Save(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) Delete(ctx context.Context, id uint) error {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(ticket).Error
}

func (s *TicketService) checkRefs(ctx context.Context, departmentID, statusID uint) error {
	if err := s.checkDepartment(ctx, departmentID); err != nil {
		return err
	}
	return s.checkStatus(ctx, statusID)
}

func (s *TicketService) checkDepartment(ctx context.Context, id uint) error {
	var dept models.Department
	if err := s.DB.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("department", "Department not found with id: %d", id)
		}
		return err
	}
	return nil
}

func (s *TicketService) checkStatus(ctx context.Context, id uint) error {
	var status models.TicketStatus
	if err := s.DB.WithContext(ctx).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("ticket_status", "Ticket status not found with id: %d", id)
		}
		return err
	}
	return nil
}
