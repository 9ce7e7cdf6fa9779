package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultTwilioTimeout = 10 * time.Second

// TwilioConfig configures the Twilio provider.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	// From is the sending phone number or messaging service SID.
	From string
	// Timeout bounds each API call; defaults to 10s.
	Timeout time.Duration
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Twilio sends SMS through the Twilio Messages API.
type Twilio struct {
	api  messageCreator
	from string
}

// NewTwilio builds a Twilio client.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, ErrMissingCredentials
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTwilioTimeout
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	client.SetTimeout(timeout)

	return &Twilio{api: client.Api, from: cfg.From}, nil
}

// Send creates a message and returns its SID. The SDK call does not take a
// context, so a canceled ctx returns early while the request finishes in the
// background.
func (t *Twilio) Send(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", ErrEmptyRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(body)

	type result struct {
		sid string
		err error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := t.api.CreateMessage(params)
		if err != nil {
			done <- result{err: fmt.Errorf("sms: twilio create message: %w", err)}
			return
		}

		var sid string
		if resp != nil && resp.Sid != nil {
			sid = *resp.Sid
		}
		done <- result{sid: sid}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.sid, r.err
	}
}
