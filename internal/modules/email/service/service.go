package service

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	emailDto "desideri.com/pugliaclub/internal/modules/email/dto"
	emailRepo "desideri.com/pugliaclub/internal/modules/email/repository"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/mailer"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

const logsLimit = 50

var (
	lineBreaks = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

type EmailService interface {
	SendTest(ctx context.Context, to string) error
	Send(ctx context.Context, adminID uuid.UUID, req emailDto.SendEmailRequest) (*emailDto.SendEmailResponse, error)
	Logs(ctx context.Context) ([]entity.EmailLog, error)
}

type emailService struct {
	repo       emailRepo.EmailLogRepository
	userRepo   userRepo.UserRepository
	mailer     mailer.Mailer
	htmlPolicy *bluemonday.Policy
	textPolicy *bluemonday.Policy
	now        func() time.Time
}

func NewEmailService(repo emailRepo.EmailLogRepository, userRepo userRepo.UserRepository, m mailer.Mailer, now func() time.Time) EmailService {
	if now == nil {
		now = time.Now
	}
	return &emailService{
		repo:       repo,
		userRepo:   userRepo,
		mailer:     m,
		htmlPolicy: bluemonday.UGCPolicy(),
		textPolicy: bluemonday.StrictPolicy(),
		now:        now,
	}
}

func (s *emailService) SendTest(ctx context.Context, to string) error {
	msg := mailer.Message{
		To:       to,
		Subject:  "Desideri di Puglia Club - Email di test",
		TextBody: "Questa è un'email di test dal pannello admin di Desideri di Puglia Club. La configurazione SMTP funziona correttamente.",
		HTMLBody: "<p>Questa è un'email di test dal pannello admin di <strong>Desideri di Puglia Club</strong>.</p><p>La configurazione SMTP funziona correttamente. 🌿</p>",
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperror.New(http.StatusInternalServerError, "Failed to send test email", err)
	}
	log.Info().Str("to", to).Msg("test email sent")
	return nil
}

// plainText turns a sanitised HTML body into a readable text alternative.
func (s *emailService) plainText(body string) string {
	text := lineBreaks.ReplaceAllString(body, "\n")
	text = html.UnescapeString(s.textPolicy.Sanitize(text))
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func (s *emailService) recipients(ctx context.Context, req emailDto.SendEmailRequest) ([]entity.User, error) {
	if req.SendToAll {
		return s.userRepo.FindAll(ctx)
	}
	if len(req.Recipients) == 0 {
		return nil, apperror.BadRequest("No recipients selected")
	}

	ids := make([]uuid.UUID, 0, len(req.Recipients))
	for _, raw := range req.Recipients {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, apperror.BadRequest("No valid recipients found")
	}
	return s.userRepo.FindByIDs(ctx, ids)
}

func (s *emailService) Send(ctx context.Context, adminID uuid.UUID, req emailDto.SendEmailRequest) (*emailDto.SendEmailResponse, error) {
	users, err := s.recipients(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.BadRequest("No valid recipients found")
	}

	htmlBody := s.htmlPolicy.Sanitize(req.Body)
	textBody := s.plainText(htmlBody)
	subject := strings.TrimSpace(req.Subject)

	sent, failed := 0, 0
	for _, u := range users {
		err := s.mailer.Send(ctx, mailer.Message{
			To:       u.Email,
			ToName:   u.Name,
			Subject:  subject,
			TextBody: textBody,
			HTMLBody: htmlBody,
		})
		if err != nil {
			failed++
			log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("email delivery failed")
			continue
		}
		sent++
	}

	status := entity.EmailStatusFailed
	switch {
	case failed == 0:
		status = entity.EmailStatusSent
	case sent > 0:
		status = entity.EmailStatusPartial
	}

	record := &entity.EmailLog{
		Subject:        subject,
		Body:           htmlBody,
		RecipientCount: len(users),
		SentCount:      sent,
		FailedCount:    failed,
		Status:         status,
		SentBy:         adminID,
		SentAt:         s.now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to store email log")
	}

	log.Info().
		Str("admin_id", adminID.String()).
		Int("sent", sent).
		Int("failed", failed).
		Str("status", status).
		Msg("email campaign finished")

	return &emailDto.SendEmailResponse{
		Message:     fmt.Sprintf("Email sent to %d of %d recipients", sent, len(users)),
		SentCount:   sent,
		FailedCount: failed,
		Status:      status,
	}, nil
}

func (s *emailService) Logs(ctx context.Context) ([]entity.EmailLog, error) {
	return s.repo.List(ctx, logsLimit)
}
