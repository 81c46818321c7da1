package service

import (
	"context"
	"testing"

	"desideri.com/pugliaclub/internal/entity"
	profileDto "desideri.com/pugliaclub/internal/modules/profile/dto"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	approved int64
	pending  int64
}

func (f fakeCounter) CountApproved(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.approved, nil
}

func (f fakeCounter) CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.approved, nil
}

func (f fakeCounter) CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.pending, nil
}

type fakePositions struct{ position int }

func (f fakePositions) GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	return f.position, nil
}

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "maria", func(u *entity.User) {
		u.TotalPoints = 750
		u.CurrentPoints = 120
		u.Level = "Local Friend"
	})

	svc := NewProfileService(userRepo.NewUserRepository(db), fakeCounter{approved: 4, pending: 1}, fakeCounter{approved: 2, pending: 3}, fakePositions{position: 5}, nil)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, "maria", profile.Username)
	assert.Equal(t, 5, profile.MonthlyPosition)
	assert.Equal(t, "Local Friend", profile.LevelStatus.Level)
	assert.Equal(t, "Ambassador", profile.LevelStatus.NextLevel)
	assert.Equal(t, 75.0, profile.LevelStatus.Progress)
	assert.Equal(t, profileDto.ProfileStats{ActionsApproved: 4, MissionsCompleted: 2, PendingSubmissions: 4}, profile.Stats)
	assert.Equal(t, []string{}, profile.Badges)
}

func TestGetProfileUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(userRepo.NewUserRepository(db), nil, nil, nil, nil)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "maria")
	testutil.CreateUser(t, db, "luca")
	svc := NewProfileService(userRepo.NewUserRepository(db), nil, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, profileDto.UpdateProfileInput{Username: strPtr("Luca")})
	require.Error(t, err)
	assert.Equal(t, "Username already taken", err.Error())

	profile, err := svc.UpdateProfile(ctx, user.ID, profileDto.UpdateProfileInput{
		Name:     strPtr("  Maria Bianchi "),
		Username: strPtr("maria bianchi"),
		Country:  strPtr("Svizzera"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Bianchi", profile.Name)
	assert.Equal(t, "maria_bianchi", profile.Username)
	assert.Equal(t, "Svizzera", profile.Country)

	var stored entity.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "maria_bianchi", stored.Username)

	// keeping one's own username is not a conflict
	_, err = svc.UpdateProfile(ctx, user.ID, profileDto.UpdateProfileInput{Username: strPtr("maria_bianchi")})
	assert.NoError(t, err)
}

func TestUpdateLanguage(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "maria")
	svc := NewProfileService(userRepo.NewUserRepository(db), nil, nil, nil, nil)
	ctx := context.Background()

	res, err := svc.UpdateLanguage(ctx, user.ID, "EN")
	require.NoError(t, err)
	assert.Equal(t, "Language updated to English", res.Message)
	assert.Equal(t, "en", res.Language)

	res, err = svc.UpdateLanguage(ctx, user.ID, "it")
	require.NoError(t, err)
	assert.Equal(t, "Lingua aggiornata", res.Message)

	_, err = svc.UpdateLanguage(ctx, user.ID, "de")
	require.Error(t, err)
	assert.Equal(t, "Unsupported language", err.Error())

	_, err = svc.UpdateLanguage(ctx, uuid.New(), "en")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}
