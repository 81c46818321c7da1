package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	emailDto "desideri.com/pugliaclub/internal/modules/email/dto"
	emailRepo "desideri.com/pugliaclub/internal/modules/email/repository"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/internal/testutil"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/mailer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent    []mailer.Message
	failFor map[string]bool
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.failFor[msg.To] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newService(t *testing.T, m *fakeMailer) (EmailService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	return NewEmailService(emailRepo.NewEmailLogRepository(db), userRepo.NewUserRepository(db), m, func() time.Time { return now }), db
}

func TestSendTest(t *testing.T) {
	m := &fakeMailer{failFor: map[string]bool{"broken@example.com": true}}
	svc, _ := newService(t, m)

	require.NoError(t, svc.SendTest(context.Background(), "admin@example.com"))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "admin@example.com", m.sent[0].To)

	err := svc.SendTest(context.Background(), "broken@example.com")
	require.Error(t, err)
	assert.Equal(t, 500, apperror.MapErrorToStatus(err))
	assert.Contains(t, err.Error(), "mailbox unavailable")
}

func TestSend_SelectedRecipients(t *testing.T) {
	m := &fakeMailer{}
	svc, db := newService(t, m)
	anna := testutil.CreateUser(t, db, "anna")
	testutil.CreateUser(t, db, "bruno")

	res, err := svc.Send(context.Background(), uuid.New(), emailDto.SendEmailRequest{
		Recipients: []string{anna.ID.String(), "not-a-uuid"},
		Subject:    "Novità",
		Body:       `<p>Ciao!</p><script>alert(1)</script><p>Nuove missioni</p>`,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EmailStatusSent, res.Status)
	assert.Equal(t, 1, res.SentCount)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "anna@example.com", m.sent[0].To)
	assert.NotContains(t, m.sent[0].HTMLBody, "<script>")
	assert.Contains(t, m.sent[0].HTMLBody, "<p>Ciao!</p>")
	assert.Equal(t, "Ciao!\nNuove missioni", m.sent[0].TextBody)
}

func TestSend_AllWithFailures(t *testing.T) {
	m := &fakeMailer{failFor: map[string]bool{"bruno@example.com": true}}
	svc, db := newService(t, m)
	testutil.CreateUser(t, db, "anna")
	testutil.CreateUser(t, db, "bruno")

	res, err := svc.Send(context.Background(), uuid.New(), emailDto.SendEmailRequest{
		Subject:   "Classifica",
		Body:      "Ecco i vincitori",
		SendToAll: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusPartial, res.Status)
	assert.Equal(t, 1, res.SentCount)
	assert.Equal(t, 1, res.FailedCount)

	logs, err := svc.Logs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 2, logs[0].RecipientCount)
	assert.Equal(t, entity.EmailStatusPartial, logs[0].Status)
}

func TestSend_AllFailed(t *testing.T) {
	m := &fakeMailer{failFor: map[string]bool{"anna@example.com": true}}
	svc, db := newService(t, m)
	anna := testutil.CreateUser(t, db, "anna")

	res, err := svc.Send(context.Background(), uuid.New(), emailDto.SendEmailRequest{
		Recipients: []string{anna.ID.String()},
		Subject:    "x",
		Body:       "y",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusFailed, res.Status)
}

func TestSend_NoRecipients(t *testing.T) {
	svc, _ := newService(t, &fakeMailer{})

	_, err := svc.Send(context.Background(), uuid.New(), emailDto.SendEmailRequest{Subject: "x", Body: "y"})
	assert.EqualError(t, err, "No recipients selected")

	_, err = svc.Send(context.Background(), uuid.New(), emailDto.SendEmailRequest{Recipients: []string{uuid.NewString()}, Subject: "x", Body: "y"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}
