package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreport/internal/config"
)

func TestBuildMessage(t *testing.T) {
	t.Run("html body with csv attachment", func(t *testing.T) {
		m, err := BuildMessage(Message{
			From:    "noreply@metax.com",
			To:      []string{"a@x.com", "b@x.com"},
			Subject: "Pendencias Docs",
			HTML:    "<p>ok</p>",
			Attachments: []Attachment{
				{Filename: "pendencias_Acme_1.csv", ContentType: "text/csv", Data: []byte("a,b\n")},
			},
		})
		require.NoError(t, err)

		rcpts, err := m.GetRecipients()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, rcpts)

		var buf bytes.Buffer
		_, err = m.WriteTo(&buf)
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Subject: Pendencias Docs")
		assert.Contains(t, out, "text/html")
		assert.Contains(t, out, "text/csv")
		assert.Contains(t, out, "pendencias_Acme_1.csv")
	})

	t.Run("no recipients", func(t *testing.T) {
		_, err := BuildMessage(Message{From: "noreply@metax.com", Subject: "x"})
		assert.True(t, errors.Is(err, ErrNoRecipients))
	})

	t.Run("no sender", func(t *testing.T) {
		_, err := BuildMessage(Message{To: []string{"a@x.com"}})
		assert.True(t, errors.Is(err, ErrNoSender))
	})

	t.Run("invalid recipient", func(t *testing.T) {
		_, err := BuildMessage(Message{From: "noreply@metax.com", To: []string{"not an address"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid recipients")
	})
}

func TestNewSMTPTransport(t *testing.T) {
	_, err := NewSMTPTransport(config.SMTPConfig{})
	require.Error(t, err)

	tr, err := NewSMTPTransport(config.SMTPConfig{Server: "smtp.example.com", From: "noreply@metax.com"})
	require.NoError(t, err)
	assert.Equal(t, 587, tr.port)
	assert.Equal(t, "noreply@metax.com", tr.from)
}

func TestSMTPTransport_SendRejectsEmptyRecipients(t *testing.T) {
	tr, err := NewSMTPTransport(config.SMTPConfig{Server: "smtp.example.com", Port: 2525, From: "noreply@metax.com"})
	require.NoError(t, err)

	err = tr.Send(context.Background(), Message{Subject: "x", HTML: "<p/>"})
	assert.True(t, errors.Is(err, ErrNoRecipients))
}
