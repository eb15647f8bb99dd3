package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func TestRoleDeleteBlockedWhileHeld(t *testing.T) {
	db := initTestDB(t)
	user := seedUser(t, db, "alice", security.RoleUser)
	svc := &RoleService{DB: db}
	ctx := context.Background()

	err := svc.Delete(ctx, user.RoleID)
	var badReq *apperr.BadRequestError
	require.ErrorAs(t, err, &badReq)

	// Still present.
	_, err = svc.GetByID(ctx, user.RoleID)
	require.NoError(t, err)
}

func TestRoleDeleteUnheldRole(t *testing.T) {
	db := initTestDB(t)
	svc := &RoleService{DB: db}
	ctx := context.Background()

	role, err := svc.Create(ctx, "ROLE_TEMP")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, role.ID))

	_, err = svc.GetByID(ctx, role.ID)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRoleCreateRejectsDuplicate(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, db.Create(&models.Role{Name: "ROLE_DUP"}).Error)
	svc := &RoleService{DB: db}

	_, err := svc.Create(context.Background(), "ROLE_DUP")
	var badReq *apperr.BadRequestError
	require.ErrorAs(t, err, &badReq)
}
