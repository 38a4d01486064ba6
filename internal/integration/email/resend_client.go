package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/minn-platform/backend/internal/application/adapter"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// ResendClient sends mail through the Resend HTTP API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a sender backed by Resend. fromName and fromEmail
// form the From header.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send delivers one message and returns Resend's message id.
func (c *ResendClient) Send(ctx context.Context, msg adapter.OutboundEmail) (string, error) {
	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", sendFailure(err)
	}

	return resp.Id, nil
}

// sendFailure wraps a provider error with retry classification.
func sendFailure(err error) error {
	if rejectedPermanently(err) {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"email provider rejected the message",
			err,
		)
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"email provider call failed, will retry",
		err,
	)
}

// rejectedPermanently sniffs the provider error text for rejections of the
// message itself. The Resend SDK surfaces API failures as flat error
// strings, so substring matching is all there is to go on. Rate limits
// (429) and provider 5xx errors stay retryable.
func rejectedPermanently(err error) bool {
	if err == nil {
		return false
	}

	text := strings.ToLower(err.Error())
	for _, marker := range []string{
		"400", "401", "403", "422",
		"bad request", "unauthorized", "forbidden",
		"validation", "invalid",
	} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
