package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type DepartmentService struct {
	DB *gorm.DB
}

func (s *DepartmentService) GetAll(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (s *DepartmentService) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := s.DB.WithContext(ctx).First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("department", "Department not found with id: %d", id)
		}
		return nil, err
	}
	return &dept, nil
}

func (s *DepartmentService) Create(ctx context.Context, name string) (*models.Department, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Department{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("Department with name %s already exists!", name)
	}
	dept := models.Department{Name: name}
	if err := s.DB.WithContext(ctx).Create(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *DepartmentService) Update(ctx context.Context, id uint, name string) (*models.Department, error) {
	dept, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(dept).Update("name", name).Error; err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id uint) error {
	dept, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(dept).Error
}
