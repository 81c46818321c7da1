package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

const (
	MembersIndex  = "members"
	signerKeyName = "MemberSearchSigner"
)

// ErrUnavailable is returned when no Meilisearch client is configured.
var ErrUnavailable = errors.New("member search is not configured")

type MemberSearchService interface {
	IndexMember(user *entity.User) error
	DeleteMember(id uuid.UUID) error
	SearchMembers(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
	GenerateSearchToken(isAdmin bool) (string, error)
}

type memberSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
	now           func() time.Time
}

// NewMemberSearchService prepares the members index. A nil client yields a
// service whose writes are no-ops and whose searches return ErrUnavailable.
func NewMemberSearchService(client meilisearch.ServiceManager) MemberSearchService {
	s := &memberSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
	if client == nil {
		log.Warn().Msg("meilisearch is not configured, member search falls back to the database")
		return s
	}
	s.initIndex()
	s.initSigningKey()
	return s
}

func (s *memberSearchService) initIndex() {
	filterable := []string{"level", "country", "is_admin"}
	filterableInterface := make([]any, len(filterable))
	for i, v := range filterable {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(MembersIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Warn().Err(err).Msg("failed to update members filterable attributes")
	}

	sortable := []string{"total_points", "created_at"}
	if _, err := s.client.Index(MembersIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Warn().Err(err).Msg("failed to update members sortable attributes")
	}

	log.Info().Str("index", MembersIndex).Msg("meilisearch index initialized")
}

func (s *memberSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		log.Warn().Err(err).Msg("failed to list meilisearch keys")
		return
	}

	for _, key := range resp.Results {
		if key.Name == signerKeyName {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Name:        signerKeyName,
		Description: "Signs admin tenant tokens for the members index",
		Actions:     []string{"search"},
		Indexes:     []string{MembersIndex},
		ExpiresAt:   s.now().AddDate(100, 0, 0),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to create meilisearch signing key")
		return
	}
	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Info().Msg("created meilisearch signing key")
}

type memberDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Level       string `json:"level"`
	TotalPoints int    `json:"total_points"`
	IsAdmin     bool   `json:"is_admin"`
	CardCode    string `json:"club_card_code"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *memberSearchService) cleanText(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	return strings.Join(strings.Fields(html.UnescapeString(sanitized)), " ")
}

func (s *memberSearchService) toDoc(user *entity.User) memberDoc {
	return memberDoc{
		ID:          user.ID.String(),
		Name:        s.cleanText(user.Name),
		Username:    user.Username,
		Email:       strings.ToLower(user.Email),
		Country:     s.cleanText(user.Country),
		Level:       user.Level,
		TotalPoints: user.TotalPoints,
		IsAdmin:     user.IsAdmin,
		CardCode:    user.CardCode(),
		CreatedAt:   user.CreatedAt.Unix(),
	}
}

func (s *memberSearchService) IndexMember(user *entity.User) error {
	if s.client == nil || user == nil {
		return nil
	}

	task, err := s.client.Index(MembersIndex).AddDocuments([]memberDoc{s.toDoc(user)}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Debug().Str("user_id", user.ID.String()).Int64("task_uid", task.TaskUID).Msg("member indexed")
	return nil
}

func (s *memberSearchService) DeleteMember(id uuid.UUID) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(MembersIndex).DeleteDocument(id.String())
	return err
}

func (s *memberSearchService) SearchMembers(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}

	raw, err := s.client.Index(MembersIndex).SearchRaw(strings.TrimSpace(query), &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return parseHits(*raw)
}

func parseHits(raw []byte) ([]uuid.UUID, error) {
	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GenerateSearchToken issues a 24h tenant token for the members index.
// Only admins may query members directly.
func (s *memberSearchService) GenerateSearchToken(isAdmin bool) (string, error) {
	if !isAdmin {
		return "", nil
	}
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		MembersIndex: map[string]any{"filter": nil},
	}
	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: s.now().Add(24 * time.Hour),
	})
}

func strPtr(s string) *string {
	return &s
}
