package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	leaderboardService "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	search "desideri.com/pugliaclub/internal/modules/search/service"
	"desideri.com/pugliaclub/internal/modules/user/dto"
	"desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"desideri.com/pugliaclub/pkg/media"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	TokenType         = "bearer"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type Config struct {
	Secret             string
	TokenTTL           time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// GoogleOAuthConfig builds the oauth2 configuration for Google sign in.
func (c Config) GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectURL:  c.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	GoogleLogin() (authURL, state string)
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*dto.AvatarResponse, error)
}

type authService struct {
	repo         repository.UserRepository
	publisher    media.Publisher
	search       search.MemberSearchService
	secret       string
	tokenTTL     time.Duration
	googleConfig *oauth2.Config
	userInfoURL  string
	now          func() time.Time
}

func NewAuthService(repo repository.UserRepository, publisher media.Publisher, searchService search.MemberSearchService, cfg Config, now func() time.Time) AuthService {
	if now == nil {
		now = time.Now
	}
	if cfg.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set, using an insecure default")
		cfg.Secret = "change-me"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &authService{
		repo:         repo,
		publisher:    publisher,
		search:       searchService,
		secret:       cfg.Secret,
		tokenTTL:     cfg.TokenTTL,
		googleConfig: cfg.GoogleOAuthConfig(),
		userInfoURL:  googleUserInfoURL,
		now:          now,
	}
}

var (
	errInvalidCredentials    = apperror.New(http.StatusUnauthorized, "Invalid email or password", apperror.ErrUnauthorized)
	errUnverifiedGoogleEmail = apperror.BadRequest("Google email is not verified")
)

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.BadRequest("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, apperror.BadRequest("Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:           strings.TrimSpace(input.Name),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Country:        strings.TrimSpace(input.Country),
		Level:          leaderboardService.LevelExplorer,
		Badges:         []string{},
		Language:       entity.LanguageItalian,
		LastResetMonth: period.MonthYear(s.now()),
	}

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("member registered")
	return s.buildAuthResponse(user)
}

func (s *authService) create(ctx context.Context, user *entity.User) error {
	if err := s.repo.AssignClubCardCode(ctx, user); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if s.search != nil {
		if err := s.search.IndexMember(user); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to index member")
		}
	}
	return nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// GoogleLogin returns the consent URL bound to a fresh state. The caller
// keeps the state and checks it against the one Google sends back.
func (s *authService) GoogleLogin() (string, string) {
	state := uuid.NewString()
	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), state
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Failed to exchange Google code", err)
	}

	client := s.googleConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.New(http.StatusBadRequest, "Failed to read Google profile", apperror.ErrBadRequest)
	}

	var profile googleUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}
	if profile.Email == "" {
		return nil, apperror.BadRequest("Google account has no email")
	}

	user, err := s.repo.FindByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if !profile.VerifiedEmail {
			return nil, errUnverifiedGoogleEmail
		}
		user, err = s.createGoogleUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		linked := user.GoogleID != nil && *user.GoogleID == profile.ID
		if !linked && !profile.VerifiedEmail {
			log.Warn().Str("user_id", user.ID.String()).Msg("refused to link unverified google account")
			return nil, errUnverifiedGoogleEmail
		}
		if !linked {
			user.GoogleID = &profile.ID
			if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{"google_id": profile.ID}); err != nil {
				log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to link google account")
			}
		}
	}

	return s.buildAuthResponse(user)
}

func (s *authService) createGoogleUser(ctx context.Context, profile googleUser) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	username := usernameFromEmail(profile.Email)
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		username = username + "_" + uuid.NewString()[:4]
	}

	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = username
	}

	user := &entity.User{
		Name:           name,
		Username:       username,
		Email:          strings.ToLower(profile.Email),
		PasswordHash:   string(hashedPassword),
		GoogleID:       &profile.ID,
		Level:          leaderboardService.LevelExplorer,
		Badges:         []string{},
		Language:       entity.LanguageItalian,
		LastResetMonth: period.MonthYear(s.now()),
	}
	if profile.Picture != "" {
		user.AvatarURL = &profile.Picture
	}

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID.String()).Msg("member registered through google")
	return user, nil
}

// usernameFromEmail keeps the lowercase local part, replacing characters a
// username may not carry.
func usernameFromEmail(email string) string {
	local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	username := b.String()
	if len(username) > 40 {
		username = username[:40]
	}
	if username == "" {
		username = "member"
	}
	return username
}

func (s *authService) UploadAvatar(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*dto.AvatarResponse, error) {
	if !media.IsImage(file.ContentType) {
		return nil, apperror.BadRequest("File must be an image")
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	url, err := s.publisher.Publish(ctx, file.Reader, media.AvatarPreset, "avatars", userID.String())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, userID, map[string]any{"avatar_url": url}); err != nil {
		return nil, err
	}

	return &dto.AvatarResponse{AvatarURL: url}, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	var searchToken string
	if s.search != nil && user.IsAdmin {
		st, err := s.search.GenerateSearchToken(true)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to generate search token")
		} else {
			searchToken = st
		}
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        dto.NewAuthUser(user),
		SearchToken: searchToken,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
