package service

import (
	"context"

	"desideri.com/pugliaclub/internal/modules/user/repository"
)

type StatService interface {
	GetTotalMembers(ctx context.Context) (int64, error)
}

type statService struct {
	userRepo repository.UserRepository
}

func NewStatService(userRepo repository.UserRepository) StatService {
	return &statService{
		userRepo: userRepo,
	}
}

func (s *statService) GetTotalMembers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
