package smssvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
)

// Default gateway endpoints, overridable per deployment via the SMS settings.
const (
	mnotifyURL = "https://api.mnotify.com/api/sms/quick"
	hubtelURL  = "https://smsc.hubtel.com/v1/messages/send"
	twilioURL  = "https://api.twilio.com/2010-04-01/Messages.json"
)

// gatewayService delivers messages over the HTTP API of whichever provider
// the system settings select. It is stateless so admins can switch providers
// at runtime without a restart.
type gatewayService struct {
	client *http.Client
	logger core.Logger
}

var _ core.SMSSender = (*gatewayService)(nil)

func NewGatewayService(conf *core.Config, logger core.Logger) *gatewayService {
	return &gatewayService{
		client: &http.Client{Timeout: conf.SMS.Timeout},
		logger: logger,
	}
}

func (svc gatewayService) Send(ctx context.Context, msg core.SMSMessage, settings core.SystemSettings) error {
	if !settings.SMS.Enabled || settings.SMS.APIKey == "" {
		return core.ErrSMSNotConfigured
	}

	body, err := buildPayload(msg, settings.SMS)
	if err != nil {
		return errors.Wrap(err, "building SMS payload")
	}

	url := settings.SMS.APIURL
	if url == "" {
		url = defaultURL(settings.SMS.Provider)
	}
	if url == "" {
		return core.ErrSMSNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "creating SMS request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling SMS gateway")
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		resBody, _ := ioutil.ReadAll(io.LimitReader(res.Body, 1024))
		svc.logger.Error(fmt.Sprintf("SMS gateway %s - status: %d - body: %s", settings.SMS.Provider, res.StatusCode, resBody))
		return errors.Errorf("SMS gateway returned status %d", res.StatusCode)
	}
	return nil
}

func defaultURL(provider string) string {
	switch provider {
	case "mnotify":
		return mnotifyURL
	case "hubtel":
		return hubtelURL
	case "twilio":
		return twilioURL
	}
	return ""
}

// buildPayload shapes the request body the way each gateway expects it.
func buildPayload(msg core.SMSMessage, conf core.SMSSettings) ([]byte, error) {
	sender := msg.Sender
	if sender == "" {
		sender = conf.SenderName
	}

	switch conf.Provider {
	case "mnotify":
		return json.Marshal(struct {
			Recipient []string `json:"recipient"`
			Sender    string   `json:"sender"`
			Message   string   `json:"message"`
			Key       string   `json:"key"`
		}{
			Recipient: []string{msg.To},
			Sender:    sender,
			Message:   msg.Message,
			Key:       conf.APIKey,
		})
	case "hubtel":
		return json.Marshal(struct {
			From     string `json:"From"`
			To       string `json:"To"`
			Content  string `json:"Content"`
			ClientID string `json:"ClientId"`
		}{
			From:     sender,
			To:       msg.To,
			Content:  msg.Message,
			ClientID: conf.APIKey,
		})
	case "twilio":
		return json.Marshal(struct {
			To   string `json:"To"`
			From string `json:"From"`
			Body string `json:"Body"`
		}{
			To:   msg.To,
			From: sender,
			Body: msg.Message,
		})
	}
	return json.Marshal(struct {
		To      string `json:"to"`
		From    string `json:"from"`
		Message string `json:"message"`
		APIKey  string `json:"apiKey"`
	}{
		To:      msg.To,
		From:    sender,
		Message: msg.Message,
		APIKey:  conf.APIKey,
	})
}
