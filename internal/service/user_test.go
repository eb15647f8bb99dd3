package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/hash"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	db := initTestDB(t)
	existing := seedUser(t, db, "alice", security.RoleUser)
	svc := &UserService{DB: db}

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: existing.Username,
		Password: "secret",
		Email:    "other@example.com",
		RoleID:   existing.RoleID,
	})
	var badReq *apperr.BadRequestError
	require.ErrorAs(t, err, &badReq)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := initTestDB(t)
	role := models.Role{Name: security.RoleUser}
	require.NoError(t, db.Create(&role).Error)
	svc := &UserService{DB: db}

	user, err := svc.Create(context.Background(), CreateUserInput{
		Username: "bob",
		Password: "hunter2",
		Email:    "bob@example.com",
		RoleID:   role.ID,
	})
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", user.PasswordHash)
	require.True(t, hash.CheckPassword(user.PasswordHash, "hunter2"))
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	db := initTestDB(t)
	user := seedUser(t, db, "alice", security.RoleUser)
	svc := &UserService{DB: db}
	ctx := context.Background()

	err := svc.ChangePassword(ctx, principalFor(user), user.ID, "wrong-old", "newpass")
	var badReq *apperr.BadRequestError
	require.ErrorAs(t, err, &badReq)

	require.NoError(t, svc.ChangePassword(ctx, principalFor(user), user.ID, "password", "newpass"))

	updated, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "newpass"))
}

func TestChangePasswordAdminSkipsOldPassword(t *testing.T) {
	db := initTestDB(t)
	user := seedUser(t, db, "alice", security.RoleUser)
	admin := seedUser(t, db, "root", security.RoleAdmin)
	svc := &UserService{DB: db}
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, principalFor(admin), user.ID, "", "resetpass"))

	updated, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "resetpass"))
}

func TestChangeUsernameRejectsTaken(t *testing.T) {
	db := initTestDB(t)
	alice := seedUser(t, db, "alice", security.RoleUser)
	seedUser(t, db, "bob", security.RoleUser)
	svc := &UserService{DB: db}
	ctx := context.Background()

	err := svc.ChangeUsername(ctx, alice.ID, "bob")
	var badReq *apperr.BadRequestError
	require.ErrorAs(t, err, &badReq)

	require.NoError(t, svc.ChangeUsername(ctx, alice.ID, "alicia"))
	renamed, err := svc.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alicia", renamed.Username)
}

func TestChangeRole(t *testing.T) {
	db := initTestDB(t)
	user := seedUser(t, db, "alice", security.RoleUser)
	adminRole := models.Role{Name: security.RoleAdmin}
	require.NoError(t, db.Create(&adminRole).Error)
	svc := &UserService{DB: db}
	ctx := context.Background()

	require.NoError(t, svc.ChangeRole(ctx, user.ID, security.RoleAdmin))

	updated, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, security.RoleAdmin, updated.Role.Name)

	err = svc.ChangeRole(ctx, user.ID, "ROLE_NOPE")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
