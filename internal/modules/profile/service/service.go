package service

import (
	"context"
	"errors"
	"strings"

	"desideri.com/pugliaclub/internal/entity"
	leaderboard "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	profileDto "desideri.com/pugliaclub/internal/modules/profile/dto"
	search "desideri.com/pugliaclub/internal/modules/search/service"
	translation "desideri.com/pugliaclub/internal/modules/translation/service"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ActionCounter and MissionCounter expose the per-member tallies shown on
// the profile.
type ActionCounter interface {
	CountApproved(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MissionCounter interface {
	CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type PositionProvider interface {
	GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error)
	UpdateLanguage(ctx context.Context, userID uuid.UUID, language string) (*profileDto.LanguageResponse, error)
}

type profileService struct {
	repo      userRepo.UserRepository
	actions   ActionCounter
	missions  MissionCounter
	positions PositionProvider
	search    search.MemberSearchService
}

func NewProfileService(repo userRepo.UserRepository, actions ActionCounter, missions MissionCounter, positions PositionProvider, searchService search.MemberSearchService) ProfileService {
	return &profileService{
		repo:      repo,
		actions:   actions,
		missions:  missions,
		positions: positions,
		search:    searchService,
	}
}

func (s *profileService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *profileService) buildProfile(ctx context.Context, user *entity.User) (*profileDto.ProfileResponse, error) {
	res := profileDto.NewProfileResponse(user)
	res.LevelStatus = leaderboard.GetLevelStatus(user.TotalPoints)

	if s.positions != nil {
		position, err := s.positions.GetUserPosition(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		res.MonthlyPosition = position
	}

	if s.actions != nil {
		approved, err := s.actions.CountApproved(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		pending, err := s.actions.CountPendingForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		res.Stats.ActionsApproved = approved
		res.Stats.PendingSubmissions += pending
	}

	if s.missions != nil {
		completed, err := s.missions.CountCompleted(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		pending, err := s.missions.CountPendingForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		res.Stats.MissionsCompleted = completed
		res.Stats.PendingSubmissions += pending
	}

	return res, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			fields["name"] = name
			user.Name = name
		}
	}

	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		fields["country"] = country
		user.Country = country
	}

	if input.Username != nil {
		username := strings.ReplaceAll(strings.TrimSpace(*input.Username), " ", "_")
		if username != "" && username != user.Username {
			existing, err := s.repo.FindByUsername(ctx, username)
			if err == nil && existing.ID != user.ID {
				return nil, apperror.BadRequest("Username already taken")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			fields["username"] = username
			user.Username = username
		}
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, user.ID, fields); err != nil {
			return nil, err
		}
		if s.search != nil {
			if err := s.search.IndexMember(user); err != nil {
				log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to reindex member")
			}
		}
	}

	return s.buildProfile(ctx, user)
}

var languageMessages = map[string]string{
	entity.LanguageItalian: "Lingua aggiornata",
	entity.LanguageEnglish: "Language updated to English",
}

func (s *profileService) UpdateLanguage(ctx context.Context, userID uuid.UUID, language string) (*profileDto.LanguageResponse, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if !translation.SupportedLanguage(language) {
		return nil, apperror.BadRequest("Unsupported language")
	}

	if err := s.repo.UpdateFields(ctx, userID, map[string]any{"language": language}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	return &profileDto.LanguageResponse{
		Message:  languageMessages[language],
		Language: language,
	}, nil
}
