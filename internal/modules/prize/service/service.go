package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	prizeDto "desideri.com/pugliaclub/internal/modules/prize/dto"
	prizeRepo "desideri.com/pugliaclub/internal/modules/prize/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"desideri.com/pugliaclub/pkg/media"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	imageFolder    = "prizes"
	restoreMessage = "Premio ripristinato al valore predefinito (restored to default)"
)

type PrizeService interface {
	List(ctx context.Context) ([]entity.Prize, error)
	ListForMonth(ctx context.Context, monthYear string) ([]entity.Prize, error)
	Update(ctx context.Context, position int, req prizeDto.UpdatePrizeRequest) (*prizeDto.PrizeMessageResponse, error)
	Restore(ctx context.Context, position int) (*prizeDto.PrizeMessageResponse, error)
	UploadImage(ctx context.Context, file commonDto.UploadFile) (*prizeDto.UploadImageResponse, error)
	Claim(ctx context.Context, position int, monthYear string) (*entity.Prize, error)
	AssignWinners(ctx context.Context, monthYear string, winners []uuid.UUID) error
}

type prizeService struct {
	repo      prizeRepo.PrizeRepository
	publisher media.Publisher
	now       func() time.Time
}

func NewPrizeService(repo prizeRepo.PrizeRepository, publisher media.Publisher, now func() time.Time) PrizeService {
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = media.NewPublisher(nil)
	}
	return &prizeService{repo: repo, publisher: publisher, now: now}
}

func validPosition(position int) error {
	if position < MinPosition || position > MaxPosition {
		return apperror.BadRequest(fmt.Sprintf("Position must be between %d and %d", MinPosition, MaxPosition))
	}
	return nil
}

func (s *prizeService) currentMonth() string {
	return period.MonthYear(s.now())
}

func (s *prizeService) List(ctx context.Context) ([]entity.Prize, error) {
	return s.ListForMonth(ctx, s.currentMonth())
}

// ListForMonth returns positions 1..3, stored rows taking precedence over
// the defaults.
func (s *prizeService) ListForMonth(ctx context.Context, monthYear string) ([]entity.Prize, error) {
	rows, err := s.repo.FindByMonth(ctx, monthYear)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[int]entity.Prize, len(rows))
	for _, p := range rows {
		byPosition[p.Position] = p
	}

	prizes := make([]entity.Prize, 0, MaxPosition)
	for pos := MinPosition; pos <= MaxPosition; pos++ {
		if p, ok := byPosition[pos]; ok {
			prizes = append(prizes, p)
			continue
		}
		prizes = append(prizes, DefaultPrize(monthYear, pos))
	}
	return prizes, nil
}

// current loads the stored row for a position, or the default when none
// exists yet.
func (s *prizeService) current(ctx context.Context, monthYear string, position int) (*entity.Prize, bool, error) {
	prize, err := s.repo.FindOne(ctx, monthYear, position)
	if err == nil {
		return prize, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	def := DefaultPrize(monthYear, position)
	return &def, false, nil
}

func (s *prizeService) Update(ctx context.Context, position int, req prizeDto.UpdatePrizeRequest) (*prizeDto.PrizeMessageResponse, error) {
	if err := validPosition(position); err != nil {
		return nil, err
	}

	prize, _, err := s.current(ctx, s.currentMonth(), position)
	if err != nil {
		return nil, err
	}

	prize.Title = strings.TrimSpace(req.Title)
	prize.Description = strings.TrimSpace(req.Description)
	prize.ImageURL = strings.TrimSpace(req.ImageURL)
	prize.IsCustom = true
	prize.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, prize); err != nil {
		return nil, err
	}

	log.Info().Int("position", position).Str("month_year", prize.MonthYear).Msg("prize updated")

	return &prizeDto.PrizeMessageResponse{
		Message: "Premio aggiornato con successo",
		Prize:   *prize,
	}, nil
}

// Restore drops the custom content of a position. A row that already has a
// winner is kept with the default content.
func (s *prizeService) Restore(ctx context.Context, position int) (*prizeDto.PrizeMessageResponse, error) {
	if err := validPosition(position); err != nil {
		return nil, err
	}

	monthYear := s.currentMonth()
	prize, stored, err := s.current(ctx, monthYear, position)
	if err != nil {
		return nil, err
	}

	def := DefaultPrize(monthYear, position)

	switch {
	case stored && (prize.WinnerID != nil || prize.Claimed):
		def.WinnerID = prize.WinnerID
		def.Claimed = prize.Claimed
		def.UpdatedAt = s.now()
		if err := s.repo.Upsert(ctx, &def); err != nil {
			return nil, err
		}
	case stored:
		if err := s.repo.Delete(ctx, monthYear, position); err != nil {
			return nil, err
		}
	}

	return &prizeDto.PrizeMessageResponse{
		Message: restoreMessage,
		Prize:   def,
	}, nil
}

func (s *prizeService) UploadImage(ctx context.Context, file commonDto.UploadFile) (*prizeDto.UploadImageResponse, error) {
	if !media.IsImage(file.ContentType) {
		return nil, apperror.BadRequest("File must be an image")
	}

	fileName := fmt.Sprintf("prize_%d", s.now().UnixNano())
	url, err := s.publisher.Publish(ctx, file.Reader, media.PrizePreset, imageFolder, fileName)
	if err != nil {
		return nil, err
	}

	return &prizeDto.UploadImageResponse{
		ImageURL: url,
		Message:  "Immagine caricata con successo",
	}, nil
}

func (s *prizeService) Claim(ctx context.Context, position int, monthYear string) (*entity.Prize, error) {
	if err := validPosition(position); err != nil {
		return nil, err
	}
	if monthYear == "" {
		monthYear = s.currentMonth()
	} else if _, err := period.ParseMonthYear(monthYear, nil); err != nil {
		return nil, apperror.BadRequest("Invalid month_year, expected YYYY-MM")
	}

	prize, _, err := s.current(ctx, monthYear, position)
	if err != nil {
		return nil, err
	}
	prize.Claimed = true
	prize.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

// AssignWinners records the winners of a closed month, position by
// position, materialising default prizes as rows.
func (s *prizeService) AssignWinners(ctx context.Context, monthYear string, winners []uuid.UUID) error {
	for i, winnerID := range winners {
		position := i + 1
		if position > MaxPosition {
			break
		}

		prize, _, err := s.current(ctx, monthYear, position)
		if err != nil {
			return err
		}
		id := winnerID
		prize.WinnerID = &id
		prize.UpdatedAt = s.now()

		if err := s.repo.Upsert(ctx, prize); err != nil {
			return err
		}
	}
	return nil
}
