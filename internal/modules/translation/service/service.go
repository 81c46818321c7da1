package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	translationDto "desideri.com/pugliaclub/internal/modules/translation/dto"
	translationRepo "desideri.com/pugliaclub/internal/modules/translation/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheTTL = 10 * time.Minute

func cacheKey(lang string) string {
	return fmt.Sprintf("translations:%s", lang)
}

// SupportedLanguage reports whether lang is one of the club languages.
func SupportedLanguage(lang string) bool {
	return lang == entity.LanguageItalian || lang == entity.LanguageEnglish
}

type TranslationService interface {
	GetMap(ctx context.Context, lang string) (map[string]string, error)
	List(ctx context.Context) ([]entity.Translation, error)
	Upsert(ctx context.Context, req translationDto.UpsertTranslationRequest) (*entity.Translation, error)
	Delete(ctx context.Context, key string) error
	SeedDefaults(ctx context.Context) error
}

type translationService struct {
	repo        translationRepo.TranslationRepository
	redisClient *redis.Client
	now         func() time.Time
}

func NewTranslationService(repo translationRepo.TranslationRepository, redisClient *redis.Client, now func() time.Time) TranslationService {
	if now == nil {
		now = time.Now
	}
	return &translationService{repo: repo, redisClient: redisClient, now: now}
}

// GetMap returns key→text for lang. Built-in defaults are overlaid with the
// stored rows and the result is cached in Redis.
func (s *translationService) GetMap(ctx context.Context, lang string) (map[string]string, error) {
	if lang == "" {
		lang = entity.LanguageItalian
	}
	if !SupportedLanguage(lang) {
		return nil, apperror.BadRequest("Unsupported language")
	}

	if cached, ok := s.fromCache(ctx, lang); ok {
		return cached, nil
	}

	result := make(map[string]string, len(defaultTranslations))
	for i := range defaultTranslations {
		result[defaultTranslations[i].Key] = defaultTranslations[i].Text(lang)
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		result[stored[i].Key] = stored[i].Text(lang)
	}

	s.toCache(ctx, lang, result)
	return result, nil
}

func (s *translationService) fromCache(ctx context.Context, lang string) (map[string]string, bool) {
	if s.redisClient == nil {
		return nil, false
	}
	raw, err := s.redisClient.Get(ctx, cacheKey(lang)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("lang", lang).Msg("translation cache read failed")
		}
		return nil, false
	}
	var result map[string]string
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return result, true
}

func (s *translationService) toCache(ctx context.Context, lang string, result map[string]string) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, cacheKey(lang), raw, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("translation cache write failed")
	}
}

func (s *translationService) invalidate(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, cacheKey(entity.LanguageItalian), cacheKey(entity.LanguageEnglish)).Err(); err != nil {
		log.Warn().Err(err).Msg("translation cache invalidation failed")
	}
}

func (s *translationService) List(ctx context.Context) ([]entity.Translation, error) {
	return s.repo.List(ctx)
}

func (s *translationService) Upsert(ctx context.Context, req translationDto.UpsertTranslationRequest) (*entity.Translation, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, apperror.BadRequest("Key is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	translation := &entity.Translation{
		Key:       key,
		Italian:   req.Italian,
		English:   req.English,
		Category:  category,
		UpdatedAt: s.now(),
	}
	if err := s.repo.Upsert(ctx, translation); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	stored, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *translationService) Delete(ctx context.Context, key string) error {
	deleted, err := s.repo.DeleteByKey(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Translation not found")
	}
	s.invalidate(ctx)
	return nil
}

// SeedDefaults stores every built-in translation that has no row yet.
func (s *translationService) SeedDefaults(ctx context.Context) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Key] = true
	}

	created := 0
	for _, t := range Defaults() {
		if have[t.Key] {
			continue
		}
		t.UpdatedAt = s.now()
		if err := s.repo.Upsert(ctx, &t); err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		s.invalidate(ctx)
		log.Info().Int("count", created).Msg("default translations seeded")
	}
	return nil
}
