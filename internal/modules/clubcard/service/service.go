package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	cardDto "desideri.com/pugliaclub/internal/modules/clubcard/dto"
	leaderboard "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const qrSize = 256

type PositionProvider interface {
	GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error)
}

type CompletionCounter interface {
	CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error)
}

type PrizeLister interface {
	List(ctx context.Context) ([]entity.Prize, error)
}

type ClubCardService interface {
	GetCard(ctx context.Context, userID uuid.UUID) (*cardDto.CardResponse, error)
	QRCode(ctx context.Context, userID uuid.UUID) ([]byte, error)
	CheckCard(ctx context.Context, rawUserID string) (*cardDto.CardCheckResponse, error)
	PublicProfile(ctx context.Context, rawUserID string) (*cardDto.PublicProfileResponse, error)
}

type clubCardService struct {
	repo          userRepo.UserRepository
	positions     PositionProvider
	completions   CompletionCounter
	prizes        PrizeLister
	publicBaseURL string
	now           func() time.Time
}

func NewClubCardService(repo userRepo.UserRepository, positions PositionProvider, completions CompletionCounter, prizes PrizeLister, publicBaseURL string, now func() time.Time) ClubCardService {
	if now == nil {
		now = time.Now
	}
	return &clubCardService{
		repo:          repo,
		positions:     positions,
		completions:   completions,
		prizes:        prizes,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           now,
	}
}

// QRURL is the public profile link encoded on a member's card.
func (s *clubCardService) QRURL(userID uuid.UUID) string {
	return fmt.Sprintf("%s/profile?popup=%s", s.publicBaseURL, userID)
}

var errUserNotFound = apperror.NotFound("User not found")

func (s *clubCardService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// findPublic resolves a path parameter that must be a member id. Emails and
// malformed ids are reported as unknown members.
func (s *clubCardService) findPublic(ctx context.Context, rawUserID string) (*entity.User, error) {
	userID, err := uuid.Parse(strings.TrimSpace(rawUserID))
	if err != nil {
		return nil, errUserNotFound
	}
	return s.findUser(ctx, userID)
}

func (s *clubCardService) GetCard(ctx context.Context, userID uuid.UUID) (*cardDto.CardResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.ClubCardCode == nil {
		if err := s.repo.AssignClubCardCode(ctx, user); err != nil {
			return nil, err
		}
	}

	return &cardDto.CardResponse{
		UserID:        user.ID,
		Name:          user.Name,
		Username:      user.Username,
		ClubCardCode:  user.CardCode(),
		ClubCardQRURL: s.QRURL(user.ID),
		JoinDate:      user.CreatedAt,
		Level:         user.Level,
		TotalPoints:   user.TotalPoints,
	}, nil
}

func (s *clubCardService) QRCode(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.QRURL(userID), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

func (s *clubCardService) CheckCard(ctx context.Context, rawUserID string) (*cardDto.CardCheckResponse, error) {
	user, err := s.findPublic(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	return &cardDto.CardCheckResponse{
		Name:         user.Name,
		Username:     user.Username,
		Level:        user.Level,
		TotalPoints:  user.TotalPoints,
		ClubCardCode: user.CardCode(),
		ClubMember:   true,
	}, nil
}

func (s *clubCardService) PublicProfile(ctx context.Context, rawUserID string) (*cardDto.PublicProfileResponse, error) {
	user, err := s.findPublic(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := &cardDto.PublicProfileResponse{
		UserInfo: cardDto.PublicUserInfo{
			Name:         user.Name,
			Username:     user.Username,
			Level:        user.Level,
			ClubCardCode: user.CardCode(),
			JoinDate:     user.CreatedAt,
			AvatarURL:    user.AvatarURL,
			Country:      user.Country,
		},
		Stats: cardDto.PublicStats{
			TotalPoints:   user.TotalPoints,
			CurrentPoints: user.CurrentPoints,
			MonthYear:     period.MonthYear(now),
		},
		Prizes:      []entity.Prize{},
		ClubMember:  true,
		LastUpdated: now,
	}

	status := leaderboard.GetLevelStatus(user.TotalPoints)
	res.Status = cardDto.PublicStatus{
		Level:     status.Level,
		NextLevel: status.NextLevel,
		Progress:  status.Progress,
	}

	if s.positions != nil {
		if res.Stats.CurrentRank, err = s.positions.GetUserPosition(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	if s.completions != nil {
		if res.Stats.MissionCompletions, err = s.completions.CountCompleted(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	if s.prizes != nil {
		prizes, err := s.prizes.List(ctx)
		if err != nil {
			return nil, err
		}
		res.Prizes = prizes
	}

	return res, nil
}
