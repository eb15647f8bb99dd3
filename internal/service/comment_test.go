package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MustafaTaha09/Complaint-System/internal/apperr"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
	"github.com/MustafaTaha09/Complaint-System/internal/security"
)

func seedTicket(t *testing.T, db *gorm.DB, owner *models.User) *models.Ticket {
	t.Helper()
	dept := models.Department{Name: "IT"}
	require.NoError(t, db.FirstOrCreate(&dept, models.Department{Name: "IT"}).Error)
	status := models.TicketStatus{Name: "OPEN"}
	require.NoError(t, db.FirstOrCreate(&status, models.TicketStatus{Name: "OPEN"}).Error)

	ticket := models.Ticket{
		Title:        "printer on fire",
		Description:  "third floor",
		UserID:       owner.ID,
		DepartmentID: dept.ID,
		StatusID:     status.ID,
	}
	require.NoError(t, db.Create(&ticket).Error)
	return &ticket
}

func TestCommentOwnerCanUpdate(t *testing.T) {
	db := initTestDB(t)
	owner := seedUser(t, db, "alice", security.RoleUser)
	ticket := seedTicket(t, db, owner)
	svc := &CommentService{DB: db}
	ctx := context.Background()

	comment, err := svc.Create(ctx, principalFor(owner), ticket.ID, "first")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, principalFor(owner), comment.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Text)
}

func TestCommentNonOwnerDenied(t *testing.T) {
	db := initTestDB(t)
	owner := seedUser(t, db, "alice", security.RoleUser)
	other := seedUser(t, db, "mallory", security.RoleUser)
	ticket := seedTicket(t, db, owner)
	svc := &CommentService{DB: db}
	ctx := context.Background()

	comment, err := svc.Create(ctx, principalFor(owner), ticket.ID, "mine")
	require.NoError(t, err)

	_, err = svc.Update(ctx, principalFor(other), comment.ID, "hijacked")
	var denied *apperr.AccessDeniedError
	require.ErrorAs(t, err, &denied)

	err = svc.Delete(ctx, principalFor(other), comment.ID)
	require.ErrorAs(t, err, &denied)

	// Untouched.
	got, err := svc.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", got.Text)
}

func TestCommentAdminOverridesOwnership(t *testing.T) {
	db := initTestDB(t)
	owner := seedUser(t, db, "alice", security.RoleUser)
	admin := seedUser(t, db, "root", security.RoleAdmin)
	ticket := seedTicket(t, db, owner)
	svc := &CommentService{DB: db}
	ctx := context.Background()

	comment, err := svc.Create(ctx, principalFor(owner), ticket.ID, "needs moderation")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, principalFor(admin), comment.ID))

	_, err = svc.GetByID(ctx, comment.ID)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCommentCreateUnknownTicket(t *testing.T) {
	db := initTestDB(t)
	user := seedUser(t, db, "alice", security.RoleUser)
	svc := &CommentService{DB: db}

	_, err := svc.Create(context.Background(), principalFor(user), 12345, "into the void")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
