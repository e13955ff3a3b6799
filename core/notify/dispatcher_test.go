package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
)

type senderMock struct {
	sent    []core.SMSMessage
	failFor map[string]bool // phone -> should fail
}

func (m *senderMock) Send(ctx context.Context, msg core.SMSMessage, settings core.SystemSettings) error {
	if m.failFor[msg.To] {
		return errors.New("provider rejected message")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func enabledSettings() core.SystemSettings {
	settings := core.DefaultSystemSettings()
	settings.SMS.Enabled = true
	settings.SMS.APIKey = "test-key"
	settings.PaymentDeadline = "30 Sep 2024"
	return settings
}

func TestDispatcher_NotifyOnPayment(t *testing.T) {
	ctx := context.Background()
	st := student.Student{
		Name:            "Ama Mensah",
		IndexNumber:     "BC/ITS/24/001",
		Phone:           "0241234567",
		TotalAmountDue:  150,
		TotalAmountPaid: 150,
	}
	pay := payment.Payment{Amount: 50, TransactionCode: "A1B2C3D4"}

	t.Run("full payment template", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		res := d.NotifyOnPayment(ctx, st, pay, enabledSettings())
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Sent)
		assert.Equal(t, 0, res.Failed)
		if assert.Len(t, sender.sent, 1) {
			msg := sender.sent[0]
			assert.Equal(t, "0241234567", msg.To)
			assert.Equal(t, "TTU-CS", msg.Sender)
			assert.Contains(t, msg.Message, "Ama Mensah")
			assert.Contains(t, msg.Message, "GH₵50.00")
			assert.Contains(t, msg.Message, "received in full")
		}
	})

	t.Run("partial payment template has balance", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		partial := st
		partial.TotalAmountPaid = 100

		res := d.NotifyOnPayment(ctx, partial, pay, enabledSettings())
		assert.True(t, res.Success)
		if assert.Len(t, sender.sent, 1) {
			assert.Contains(t, sender.sent[0].Message, "partial payment")
			assert.Contains(t, sender.sent[0].Message, "GH₵50.00") // remaining balance
		}
	})

	t.Run("disabled settings skip sending", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		settings := enabledSettings()
		settings.SMS.Enabled = false

		res := d.NotifyOnPayment(ctx, st, pay, settings)
		assert.False(t, res.Success)
		assert.Equal(t, 0, res.Sent)
		assert.Equal(t, 1, res.Failed)
		assert.Empty(t, sender.sent)
	})

	t.Run("student without phone counts failed", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		noPhone := st
		noPhone.Phone = ""

		res := d.NotifyOnPayment(ctx, noPhone, pay, enabledSettings())
		assert.False(t, res.Success)
		assert.Equal(t, 1, res.Failed)
		assert.Empty(t, sender.sent)
	})

	t.Run("provider failure is absorbed", func(t *testing.T) {
		sender := &senderMock{failFor: map[string]bool{"0241234567": true}}
		d := NewDispatcher(sender, nopLogger{})

		res := d.NotifyOnPayment(ctx, st, pay, enabledSettings())
		assert.False(t, res.Success)
		assert.Equal(t, 1, res.Failed)
	})
}

func TestDispatcher_SendBulkSMS(t *testing.T) {
	ctx := context.Background()
	students := []student.Student{
		{Name: "Ama", IndexNumber: "BC/ITS/24/001", Phone: "0241111111", TotalAmountDue: 200, TotalAmountPaid: 50},
		{Name: "Kofi", IndexNumber: "BC/ITN/24/060", TotalAmountDue: 200}, // no phone
		{Name: "Esi", IndexNumber: "BC/ITD/24/120", Phone: "0243333333", TotalAmountDue: 200, TotalAmountPaid: 200},
	}

	t.Run("keeps going past phone-less students", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		res := d.SendBulkSMS(ctx, students, "Hi {studentName}, you owe {remainingBalance}.", nil, enabledSettings())
		assert.True(t, res.Success)
		assert.Equal(t, 2, res.Sent)
		assert.Equal(t, 1, res.Failed)
		if assert.Len(t, sender.sent, 2) {
			assert.Equal(t, "Hi Ama, you owe GH₵150.00.", sender.sent[0].Message)
			assert.Equal(t, "Hi Esi, you owe GH₵0.00.", sender.sent[1].Message)
		}
	})

	t.Run("extra data overrides ledger fields", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		res := d.SendBulkSMS(ctx, students[:1], "{studentName}: {note}", map[string]interface{}{"note": "see the office"}, enabledSettings())
		assert.Equal(t, 1, res.Sent)
		assert.Equal(t, "Ama: see the office", sender.sent[0].Message)
		_ = res
	})

	t.Run("over-long messages get truncated", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		res := d.SendBulkSMS(ctx, students[:1], strings.Repeat("a", 600), nil, enabledSettings())
		assert.Equal(t, 1, res.Sent)
		if assert.Len(t, sender.sent, 1) {
			msg := sender.sent[0].Message
			assert.Len(t, msg, maxSMSLength+len("..."))
			assert.True(t, strings.HasSuffix(msg, "..."))
		}
	})

	t.Run("disabled settings fail everyone", func(t *testing.T) {
		sender := &senderMock{}
		d := NewDispatcher(sender, nopLogger{})

		settings := enabledSettings()
		settings.SMS.Enabled = false

		res := d.SendBulkSMS(ctx, students, "x", nil, settings)
		assert.False(t, res.Success)
		assert.Equal(t, 0, res.Sent)
		assert.Equal(t, len(students), res.Failed)
		assert.Empty(t, sender.sent)
	})
}

func TestDispatcher_SendPaymentReminders(t *testing.T) {
	ctx := context.Background()
	students := []student.Student{
		{Name: "Ama", Phone: "0241111111", TotalAmountDue: 200, TotalAmountPaid: 50},
		{Name: "Esi", Phone: "0243333333", TotalAmountDue: 200, TotalAmountPaid: 200}, // settled
		{Name: "Yaw", Phone: "0244444444", TotalAmountDue: 200, TotalAmountPaid: 0},
	}

	sender := &senderMock{}
	d := NewDispatcher(sender, nopLogger{})

	res := d.SendPaymentReminders(ctx, students, enabledSettings())
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 0, res.Failed)
	for _, msg := range sender.sent {
		assert.Contains(t, msg.Message, "reminder")
		assert.Contains(t, msg.Message, "30 Sep 2024")
	}
}
