package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/hash"
	"github.com/MustafaTaha09/Complaint-System/internal/logging"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

type UserService struct {
	DB *gorm.DB
}

type CreateUserInput struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	RoleID       uint   `json:"role_id"`
	DepartmentID *uint  `json:"department_id"`
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Preload("Department").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Preload("Department").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", "User not found with id: %d", id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Role").Preload("Department").
		Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", "User not found with Username: %s", username)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.create", "username", in.Username)

	exists, err := s.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		l.Warn("username already exists")
		return nil, apperr.BadRequest("Username with %s already exists!", in.Username)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := s.DB.WithContext(ctx).First(&role, in.RoleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role", "Role not found with id: %d", in.RoleID)
		}
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		PasswordHash: pwHash,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		RoleID:       role.ID,
		Role:         role,
	}

	if in.DepartmentID != nil {
		var dept models.Department
		if err := s.DB.WithContext(ctx).First(&dept, *in.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("department", "Department not found with id: %d", *in.DepartmentID)
			}
			return nil, err
		}
		user.DepartmentID = &dept.ID
		user.Department = &dept
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	l.Info("created user", "user_id", user.ID)
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(user).Error
}

// ChangeUsername renames the user. Exactly one state change per request.
func (s *UserService) ChangeUsername(ctx context.Context, id uint, newUsername string) error {
	exists, err := s.ExistsByUsername(ctx, newUsername)
	if err != nil {
		return err
	}
	if exists {
		return apperr.BadRequest("Username is already taken!")
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(user).Update("username", newUsername).Error
}

// ChangePassword requires the correct old password unless the caller is
// an admin changing someone else's credentials.
func (s *UserService) ChangePassword(ctx context.Context, caller security.Principal, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		if !hash.CheckPassword(user.PasswordHash, oldPassword) {
			return apperr.BadRequest("Incorrect old password")
		}
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(user).Update("password_hash", pwHash).Error
}

// ChangeRole assigns the named role to the user.
func (s *UserService) ChangeRole(ctx context.Context, userID uint, roleName string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	var role models.Role
	if err := s.DB.WithContext(ctx).Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("role", "Role not found with name: %s", roleName)
		}
		return err
	}
	return s.DB.WithContext(ctx).Model(user).Update("role_id", role.ID).Error
}
