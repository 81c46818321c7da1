package bootstrap

import (
	"context"
	"errors"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	actionRepo "desideri.com/pugliaclub/internal/modules/action/repository"
	leaderboard "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	missionRepo "desideri.com/pugliaclub/internal/modules/mission/repository"
	translationRepo "desideri.com/pugliaclub/internal/modules/translation/repository"
	translationService "desideri.com/pugliaclub/internal/modules/translation/service"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(entity.Models()...)
}

// Seed inserts the reference data the club needs to run. Existing rows are
// left untouched so admin edits survive restarts.
func Seed(ctx context.Context, db *gorm.DB, development bool, now func() time.Time) error {
	if err := SeedActionTypes(ctx, db); err != nil {
		return err
	}
	if err := translationService.NewTranslationService(translationRepo.NewTranslationRepository(db), nil, now).SeedDefaults(ctx); err != nil {
		return err
	}
	if err := SeedSampleMission(ctx, db); err != nil {
		return err
	}
	if err := SeedAdminUser(ctx, db, now); err != nil {
		return err
	}
	if development {
		if err := SeedTestUser(ctx, db, now); err != nil {
			return err
		}
	}
	return nil
}

var defaultActionTypes = []entity.ActionType{
	{ID: "like_post", Name: "Like a un post", Points: 5, MaxPerDay: 5, Description: "Metti like a un post di @desideridipuglia"},
	{ID: "comment_post", Name: "Commento a un post", Points: 10, MaxPerDay: 3, Description: "Commenta un post di @desideridipuglia"},
	{ID: "share_story", Name: "Condividi nelle storie", Points: 20, MaxPerDay: 2, Description: "Condividi un nostro post nelle tue storie"},
	{ID: "post_hashtag", Name: "Post con hashtag", Points: 25, MaxPerWeek: 3, Description: "Pubblica un post con #DesideriDiPuglia"},
	{ID: "google_review", Name: "Recensione Google", Points: 50, MaxPerMonth: 1, Description: "Lascia una recensione su Google"},
	{ID: "visit_partner", Name: "Visita un partner", Points: 40, MaxPerWeek: 2, Description: "Visita una struttura partner del club"},
	{ID: "tag_bnb_photo", Name: "Foto taggata del B&B", Points: 30, MaxPerWeek: 2, Description: "Pubblica una foto del B&B taggando @desideridipuglia"},
	{ID: "invite_friend", Name: "Invita un amico", Points: 100, MaxPerMonth: 5, Description: "Invita un amico a iscriversi al club"},
}

func SeedActionTypes(ctx context.Context, db *gorm.DB) error {
	repo := actionRepo.NewActionRepository(db)
	for _, t := range defaultActionTypes {
		_, err := repo.FindType(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		actionType := t
		actionType.IsActive = true
		if err := repo.UpsertType(ctx, &actionType); err != nil {
			return err
		}
	}
	return nil
}

const sampleMissionTitle = "Tramonto Pugliese"

func SeedSampleMission(ctx context.Context, db *gorm.DB) error {
	repo := missionRepo.NewMissionRepository(db)
	_, err := repo.FindByTitle(ctx, sampleMissionTitle)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return repo.Create(ctx, &entity.Mission{
		Title:            sampleMissionTitle,
		Description:      "Condividi una foto del tramonto pugliese per guadagnare punti extra!",
		Points:           50,
		Frequency:        entity.FrequencyDaily,
		IsActive:         true,
		Requirements:     []string{"Foto del tramonto", "Tag @desideridipuglia", "Hashtag #TramontoInPuglia"},
		RequiresPhoto:    true,
		PhotoSource:      "any",
		RequiresApproval: true,
	})
}

type seedUser struct {
	name          string
	username      string
	email         string
	password      string
	currentPoints int
	totalPoints   int
	badges        []string
	isAdmin       bool
}

func SeedAdminUser(ctx context.Context, db *gorm.DB, now func() time.Time) error {
	return seed(ctx, db, now, seedUser{
		name:        "Admin Desideri di Puglia",
		username:    "admin_dp",
		email:       "admin@desideridipuglia.com",
		password:    "admin123",
		totalPoints: 2500,
		badges:      []string{"Founder", "Admin"},
		isAdmin:     true,
	})
}

func SeedTestUser(ctx context.Context, db *gorm.DB, now func() time.Time) error {
	return seed(ctx, db, now, seedUser{
		name:          "Marco Pugliese",
		username:      "marco_explorer",
		email:         "test@desideridipuglia.com",
		password:      "test123",
		currentPoints: 150,
		totalPoints:   350,
	})
}

func seed(ctx context.Context, db *gorm.DB, now func() time.Time, su seedUser) error {
	repo := userRepo.NewUserRepository(db)

	_, err := repo.FindByEmail(ctx, su.email)
	if err == nil {
		log.Debug().Str("email", su.email).Msg("seed user already exists, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	badges := su.badges
	if badges == nil {
		badges = []string{}
	}

	user := &entity.User{
		Name:           su.name,
		Username:       su.username,
		Email:          su.email,
		PasswordHash:   string(hashed),
		Country:        "IT",
		CurrentPoints:  su.currentPoints,
		TotalPoints:    su.totalPoints,
		Level:          leaderboard.LevelFor(su.totalPoints),
		Badges:         badges,
		IsAdmin:        su.isAdmin,
		Language:       entity.LanguageItalian,
		LastResetMonth: now().Format("2006-01"),
	}
	if err := repo.Create(ctx, user); err != nil {
		return err
	}
	if err := repo.AssignClubCardCode(ctx, user); err != nil {
		return err
	}

	log.Info().Str("email", su.email).Str("username", su.username).Msg("seed user created")
	return nil
}
