package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

type RoleService struct {
	DB *gorm.DB
}

func (s *RoleService) GetAll(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *RoleService) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := s.DB.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role", "Role not found with id: %d", id)
		}
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) Create(ctx context.Context, name string) (*models.Role, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("Role with name %s already exists!", name)
	}
	role := models.Role{Name: name}
	if err := s.DB.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, name string) (*models.Role, error) {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(role).Update("name", name).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role unless any user still holds it.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	var holders int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("role_id = ?", role.ID).Count(&holders).Error; err != nil {
		return err
	}
	if holders > 0 {
		return apperr.BadRequest("Role %s is assigned to %d user(s) and cannot be deleted", role.Name, holders)
	}
	return s.DB.WithContext(ctx).Delete(role).Error
}
