package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutHostLogsOnly(t *testing.T) {
	m := New(Config{})
	_, ok := m.(*logMailer)
	require.True(t, ok)

	assert.NoError(t, m.Send(context.Background(), Message{To: "a@b.it", Subject: "Ciao"}))
}

func TestNewDefaultsPort(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", From: "club@example.com"})
	sm, ok := m.(*smtpMailer)
	require.True(t, ok)
	assert.Equal(t, 587, sm.cfg.Port)
}

func TestBuildMessage(t *testing.T) {
	cfg := Config{From: "club@desideridipuglia.com", FromName: "Desideri di Puglia Club"}
	mm, err := BuildMessage(cfg, Message{
		To:       "socio@example.com",
		ToName:   "Maria",
		Subject:  "Novità del mese",
		TextBody: "Ciao Maria",
		HTMLBody: "<p>Ciao <b>Maria</b></p>",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = mm.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "socio@example.com")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestBuildMessageRejectsBadAddress(t *testing.T) {
	_, err := BuildMessage(Config{From: "club@example.com"}, Message{To: "not an address"})
	assert.Error(t, err)
}
