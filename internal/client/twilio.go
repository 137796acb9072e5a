package client

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// MessageSender sends a text message to a phone number. Delivery is best
// effort; callers dispatching in the background log the error and move on.
type MessageSender interface {
	Send(to, body string) error
}

// TwilioSender sends SMS messages through the Twilio API.
type TwilioSender struct {
	client      *twilio.RestClient
	fromNumber  string
	countryCode string
	log         *zap.SugaredLogger
}

// NewTwilioSender creates a new TwilioSender
func NewTwilioSender(accountSID, authToken, fromNumber, countryCode string, log *zap.SugaredLogger) *TwilioSender {
	restClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{
		client:      restClient,
		fromNumber:  fromNumber,
		countryCode: countryCode,
		log:         log,
	}
}

// Send sends one SMS. Recipient numbers without a leading "+" get the
// configured country code prefixed.
func (s *TwilioSender) Send(to, body string) error {
	if !strings.HasPrefix(to, "+") {
		to = s.countryCode + to
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}

	if msg.Sid != nil {
		s.log.Infow("SMS sent via Twilio", "sid", *msg.Sid, "to", to)
	}
	return nil
}
