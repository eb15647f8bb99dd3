package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/hash"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Department{},
		&models.User{},
		&models.RefreshToken{},
		&models.TicketStatus{},
		&models.Ticket{},
		&models.Comment{},
		&models.TicketAssignment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, roleName string) *models.User {
	t.Helper()
	var role models.Role
	err := db.Where("name = ?", roleName).First(&role).Error
	if err != nil {
		role = models.Role{Name: roleName}
		require.NoError(t, db.Create(&role).Error)
	}

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Email:        username + "@example.com",
		RoleID:       role.ID,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func principalFor(user *models.User) security.Principal {
	return security.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.Name,
	}
}
