package service

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 7, 3, 18, 0, 0, 0, time.UTC)

type fakeStats struct{}

func (fakeStats) GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error) { return 3, nil }

func (fakeStats) CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error) { return 7, nil }

func (fakeStats) List(ctx context.Context) ([]entity.Prize, error) {
	return []entity.Prize{{Position: 1, MonthYear: "2026-07", Title: "Soggiorno in Masseria"}}, nil
}

func newService(t *testing.T) (ClubCardService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewClubCardService(userRepo.NewUserRepository(db), fakeStats{}, fakeStats{}, fakeStats{}, "https://club.example.com/", func() time.Time { return fixedNow })
	return svc, db
}

func TestGetCardAssignsCodeOnce(t *testing.T) {
	svc, db := newService(t)
	user := testutil.CreateUser(t, db, "maria")
	ctx := context.Background()

	card, err := svc.GetCard(ctx, user.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^DP-[A-Z2-9]{4}$`, card.ClubCardCode)
	assert.Equal(t, "https://club.example.com/profile?popup="+user.ID.String(), card.ClubCardQRURL)

	again, err := svc.GetCard(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ClubCardCode, again.ClubCardCode)

	var stored entity.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, card.ClubCardCode, stored.CardCode())
}

func TestQRCodeIsPNG(t *testing.T) {
	svc, db := newService(t)
	user := testutil.CreateUser(t, db, "maria")

	data, err := svc.QRCode(context.Background(), user.ID)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestCheckCard(t *testing.T) {
	svc, db := newService(t)
	user := testutil.CreateUser(t, db, "maria", func(u *entity.User) { u.TotalPoints = 900 })
	ctx := context.Background()

	res, err := svc.CheckCard(ctx, user.ID.String())
	require.NoError(t, err)
	assert.True(t, res.ClubMember)
	assert.Equal(t, 900, res.TotalPoints)

	for _, raw := range []string{"maria@example.com", "not-an-id", uuid.NewString()} {
		_, err := svc.CheckCard(ctx, raw)
		require.Error(t, err, raw)
		assert.Equal(t, "User not found", err.Error())
	}
}

func TestPublicProfile(t *testing.T) {
	svc, db := newService(t)
	user := testutil.CreateUser(t, db, "maria", func(u *entity.User) {
		u.TotalPoints = 1500
		u.CurrentPoints = 200
		u.Level = "Ambassador"
	})

	res, err := svc.PublicProfile(context.Background(), user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "maria", res.UserInfo.Username)
	assert.Equal(t, 3, res.Stats.CurrentRank)
	assert.Equal(t, int64(7), res.Stats.MissionCompletions)
	assert.Equal(t, "2026-07", res.Stats.MonthYear)
	assert.Equal(t, "Ambassador", res.Status.Level)
	assert.Equal(t, "Legend", res.Status.NextLevel)
	assert.Equal(t, 75.0, res.Status.Progress)
	assert.Len(t, res.Prizes, 1)
	assert.True(t, res.ClubMember)
	assert.Equal(t, fixedNow, res.LastUpdated)

	_, err = svc.PublicProfile(context.Background(), "maria@example.com")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}
