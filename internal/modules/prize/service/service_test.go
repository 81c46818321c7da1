package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	prizeDto "desideri.com/pugliaclub/internal/modules/prize/dto"
	prizeRepo "desideri.com/pugliaclub/internal/modules/prize/repository"
	"desideri.com/pugliaclub/internal/testutil"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (PrizeService, prizeRepo.PrizeRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := prizeRepo.NewPrizeRepository(db)
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	return NewPrizeService(repo, nil, func() time.Time { return now }), repo
}

func TestList_Defaults(t *testing.T) {
	svc, _ := newService(t)

	prizes, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, prizes, 3)
	assert.Equal(t, "Soggiorno in Masseria", prizes[0].Title)
	assert.Equal(t, "Cena Tipica Pugliese", prizes[1].Title)
	assert.Equal(t, "Kit Prodotti Tipici", prizes[2].Title)
	for i, p := range prizes {
		assert.Equal(t, i+1, p.Position)
		assert.Equal(t, "2025-03", p.MonthYear)
		assert.False(t, p.IsCustom)
	}
}

func TestUpdateAndRestore(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	res, err := svc.Update(ctx, 2, prizeDto.UpdatePrizeRequest{Title: "Tour in barca", Description: "Polignano a Mare"})
	require.NoError(t, err)
	assert.True(t, res.Prize.IsCustom)

	prizes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tour in barca", prizes[1].Title)
	assert.True(t, prizes[1].IsCustom)
	assert.Equal(t, "Soggiorno in Masseria", prizes[0].Title)

	restored, err := svc.Restore(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Premio ripristinato al valore predefinito (restored to default)", restored.Message)
	assert.Equal(t, "Cena Tipica Pugliese", restored.Prize.Title)
	assert.False(t, restored.Prize.IsCustom)

	rows, err := repo.FindByMonth(ctx, "2025-03")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRestore_KeepsWinner(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	winner := uuid.New()

	_, err := svc.Update(ctx, 1, prizeDto.UpdatePrizeRequest{Title: "Custom"})
	require.NoError(t, err)
	require.NoError(t, svc.AssignWinners(ctx, "2025-03", []uuid.UUID{winner}))

	_, err = svc.Restore(ctx, 1)
	require.NoError(t, err)

	stored, err := repo.FindOne(ctx, "2025-03", 1)
	require.NoError(t, err)
	assert.Equal(t, "Soggiorno in Masseria", stored.Title)
	assert.False(t, stored.IsCustom)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, winner, *stored.WinnerID)
}

func TestInvalidPosition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 4, prizeDto.UpdatePrizeRequest{Title: "x"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.Restore(ctx, 0)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.Claim(ctx, 9, "")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestAssignWinners(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	winners := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	require.NoError(t, svc.AssignWinners(ctx, "2025-02", winners))

	rows, err := repo.FindByMonth(ctx, "2025-02")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		require.NotNil(t, row.WinnerID)
		assert.Equal(t, winners[i], *row.WinnerID)
		assert.Equal(t, DefaultPrize("2025-02", i+1).Title, row.Title)
	}
}

func TestClaim(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	prize, err := svc.Claim(ctx, 1, "")
	require.NoError(t, err)
	assert.True(t, prize.Claimed)

	prizes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, prizes[0].Claimed)
	assert.False(t, prizes[1].Claimed)

	_, err = svc.Claim(ctx, 1, "02-2025")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestUploadImage(t *testing.T) {
	svc, _ := newService(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20))))

	res, err := svc.UploadImage(context.Background(), commonDto.UploadFile{Reader: &buf, ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ImageURL, "data:image/jpeg;base64,"))

	_, err = svc.UploadImage(context.Background(), commonDto.UploadFile{Reader: strings.NewReader("x"), ContentType: "application/pdf"})
	assert.EqualError(t, err, "File must be an image")
}
