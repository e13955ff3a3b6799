package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSMSNotConfigured signals that sending was skipped because SMS is
	// disabled or the provider API key is missing. Callers report it as a
	// failed result, never as a fault.
	ErrSMSNotConfigured = errors.New("SMS is not enabled or API key is missing")
)

type (
	// SMSMessage is a single text message addressed to one phone number.
	SMSMessage struct {
		To      string `json:"to"`
		Message string `json:"message"`
		Sender  string `json:"sender,omitempty"`
	}

	// SMSSender is any service that can deliver a single SMSMessage.
	// Provider credentials and templates travel with the settings so
	// admins can switch providers without a restart.
	SMSSender interface {
		Send(ctx context.Context, msg SMSMessage, settings SystemSettings) error
	}

	// SMSResult aggregates the outcome of a notification attempt.
	SMSResult struct {
		Success bool   `json:"success"`
		Sent    int    `json:"sent"`
		Failed  int    `json:"failed"`
		Message string `json:"message"`
	}
)

// RenderSMSTemplate replaces {field} tokens in a template with string-coerced
// values from data. Unmatched placeholders are left verbatim.
func RenderSMSTemplate(template string, data map[string]interface{}) string {
	out := template
	for key, val := range data {
		out = strings.ReplaceAll(out, "{"+key+"}", fmt.Sprintf("%v", val))
	}
	return out
}
