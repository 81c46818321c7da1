package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"desideri.com/pugliaclub/internal/entity"
	adminDto "desideri.com/pugliaclub/internal/modules/admin/dto"
	leaderboardDto "desideri.com/pugliaclub/internal/modules/leaderboard/dto"
	leaderboard "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	search "desideri.com/pugliaclub/internal/modules/search/service"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const searchLimit = 20

// PendingCounter reports how many submissions wait for moderation.
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type MissionCounter interface {
	PendingCounter
	CountActive(ctx context.Context) (int64, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]adminDto.AdminUserResponse, error)
	SearchUsers(ctx context.Context, query string) ([]adminDto.AdminUserResponse, error)
	AdjustPoints(ctx context.Context, adminID, userID uuid.UUID, req adminDto.AdjustPointsRequest) (*adminDto.AdjustPointsResponse, error)
	Dashboard(ctx context.Context) (*adminDto.DashboardResponse, error)
}

type adminService struct {
	userRepo    userRepo.UserRepository
	leaderboard leaderboard.LeaderboardService
	search      search.MemberSearchService
	actions     PendingCounter
	missions    MissionCounter
}

func NewAdminService(userRepo userRepo.UserRepository, leaderboard leaderboard.LeaderboardService, searchService search.MemberSearchService, actions PendingCounter, missions MissionCounter) AdminService {
	return &adminService{
		userRepo:    userRepo,
		leaderboard: leaderboard,
		search:      searchService,
		actions:     actions,
		missions:    missions,
	}
}

func toResponses(users []entity.User) []adminDto.AdminUserResponse {
	res := make([]adminDto.AdminUserResponse, 0, len(users))
	for i := range users {
		res = append(res, adminDto.NewAdminUserResponse(&users[i]))
	}
	return res
}

func (s *adminService) ListUsers(ctx context.Context) ([]adminDto.AdminUserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// SearchUsers asks the members index first and falls back to a database
// LIKE query when the index is unavailable.
func (s *adminService) SearchUsers(ctx context.Context, query string) ([]adminDto.AdminUserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListUsers(ctx)
	}

	if s.search != nil {
		ids, err := s.search.SearchMembers(ctx, query, searchLimit)
		if err == nil {
			users, err := s.userRepo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return toResponses(orderByIDs(users, ids)), nil
		}
		if !errors.Is(err, search.ErrUnavailable) {
			log.Warn().Err(err).Str("query", query).Msg("member search failed, falling back to database")
		}
	}

	users, err := s.userRepo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// orderByIDs keeps the relevance order of the index hits.
func orderByIDs(users []entity.User, ids []uuid.UUID) []entity.User {
	byID := make(map[uuid.UUID]entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]entity.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered
}

func (s *adminService) AdjustPoints(ctx context.Context, adminID, userID uuid.UUID, req adminDto.AdjustPointsRequest) (*adminDto.AdjustPointsResponse, error) {
	if req.Points == 0 {
		return nil, apperror.BadRequest("Points must not be zero")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Manual adjustment"
	}

	result, err := s.leaderboard.AwardPoints(ctx, leaderboardDto.AwardInput{
		UserID:      userID,
		Points:      req.Points,
		Source:      entity.PointSourceAdmin,
		ReferenceID: adminID.String(),
		Reason:      reason,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Str("user_id", userID.String()).
		Int("points", req.Points).
		Msg("points adjusted")

	if s.search != nil {
		user.CurrentPoints = result.CurrentPoints
		user.TotalPoints = result.TotalPoints
		user.Level = result.Level
		if err := s.search.IndexMember(user); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to reindex member")
		}
	}

	verb := "Added"
	amount := req.Points
	preposition := "to"
	if amount < 0 {
		verb, amount, preposition = "Removed", -amount, "from"
	}

	return &adminDto.AdjustPointsResponse{
		Message:       fmt.Sprintf("%s %d points %s %s", verb, amount, preposition, user.Username),
		CurrentPoints: result.CurrentPoints,
		TotalPoints:   result.TotalPoints,
		Level:         result.Level,
	}, nil
}

func (s *adminService) Dashboard(ctx context.Context) (*adminDto.DashboardResponse, error) {
	res := &adminDto.DashboardResponse{MonthYear: s.leaderboard.CurrentMonth()}

	var err error
	if res.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if res.PendingActions, err = s.actions.CountPending(ctx); err != nil {
		return nil, err
	}
	if res.PendingMissions, err = s.missions.CountPending(ctx); err != nil {
		return nil, err
	}
	if res.ActiveMissions, err = s.missions.CountActive(ctx); err != nil {
		return nil, err
	}
	if res.PointsThisMonth, err = s.leaderboard.MonthlyPoints(ctx); err != nil {
		return nil, err
	}
	return res, nil
}
