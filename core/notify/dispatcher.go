package notify

import (
	"context"
	"fmt"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
)

// maxSMSLength caps a rendered message at three concatenated GSM segments,
// leaving room for the truncation ellipsis.
const maxSMSLength = 456

// Dispatcher turns ledger events into provider SMS messages. Every method is
// best-effort: failures are logged and counted, never raised to the caller.
type Dispatcher struct {
	sender core.SMSSender
	logger core.Logger
}

var _ payment.Notifier = (*Dispatcher)(nil)

func NewDispatcher(sender core.SMSSender, logger core.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// NotifyOnPayment sends the full or partial payment confirmation, selected
// on the student's ledger state after the payment was applied.
func (d *Dispatcher) NotifyOnPayment(
	ctx context.Context,
	st student.Student,
	pay payment.Payment,
	settings core.SystemSettings,
) core.SMSResult {
	if !settings.SMS.Enabled {
		return core.SMSResult{Success: false, Failed: 1, Message: "SMS notifications are disabled"}
	}
	if st.Phone == "" {
		return core.SMSResult{Success: false, Failed: 1, Message: "student has no phone number"}
	}

	template := settings.SMS.Templates.PartialPayment
	if st.TotalAmountPaid >= st.TotalAmountDue {
		template = settings.SMS.Templates.FullPayment
	}
	text := core.TruncateText(core.RenderSMSTemplate(template, map[string]interface{}{
		"studentName":      st.Name,
		"amount":           core.FormatCurrency(pay.Amount),
		"transactionCode":  pay.TransactionCode,
		"remainingBalance": core.FormatCurrency(st.RemainingBalance()),
	}), maxSMSLength)

	msg := core.SMSMessage{To: st.Phone, Message: text, Sender: settings.SMS.SenderName}
	if err := d.sender.Send(ctx, msg, settings); err != nil {
		d.logger.Error(fmt.Sprintf("sending payment SMS to %s", st.Phone), err)
		return core.SMSResult{Success: false, Failed: 1, Message: "SMS could not be delivered"}
	}
	return core.SMSResult{Success: true, Sent: 1, Message: "SMS sent successfully"}
}

// SendBulkSMS renders the template per student and keeps going through the
// whole list no matter what fails. Students without a phone number count as
// failed.
func (d *Dispatcher) SendBulkSMS(
	ctx context.Context,
	students []student.Student,
	template string,
	extra map[string]interface{},
	settings core.SystemSettings,
) core.SMSResult {
	if !settings.SMS.Enabled {
		return core.SMSResult{Success: false, Failed: len(students), Message: "SMS notifications are disabled"}
	}

	var sent, failed int
	for _, st := range students {
		if st.Phone == "" {
			failed++
			continue
		}

		data := map[string]interface{}{
			"studentName":      st.Name,
			"indexNumber":      st.IndexNumber,
			"totalAmountDue":   core.FormatCurrency(st.TotalAmountDue),
			"totalAmountPaid":  core.FormatCurrency(st.TotalAmountPaid),
			"remainingBalance": core.FormatCurrency(st.RemainingBalance()),
		}
		for k, v := range extra {
			data[k] = v
		}

		msg := core.SMSMessage{
			To:      st.Phone,
			Message: core.TruncateText(core.RenderSMSTemplate(template, data), maxSMSLength),
			Sender:  settings.SMS.SenderName,
		}
		if err := d.sender.Send(ctx, msg, settings); err != nil {
			d.logger.Error(fmt.Sprintf("sending bulk SMS to %s", st.Phone), err)
			failed++
			continue
		}
		sent++
	}

	return core.SMSResult{
		Success: sent > 0,
		Sent:    sent,
		Failed:  failed,
		Message: fmt.Sprintf("sent %d, failed %d", sent, failed),
	}
}

// SendPaymentReminders messages every student still owing money with the
// reminder template.
func (d *Dispatcher) SendPaymentReminders(
	ctx context.Context,
	students []student.Student,
	settings core.SystemSettings,
) core.SMSResult {
	owing := make([]student.Student, 0, len(students))
	for _, st := range students {
		if st.TotalAmountPaid < st.TotalAmountDue {
			owing = append(owing, st)
		}
	}
	return d.SendBulkSMS(ctx, owing, settings.SMS.Templates.PaymentReminder, map[string]interface{}{
		"paymentDeadline": settings.PaymentDeadline,
		"academicYear":    settings.AcademicYear,
	}, settings)
}
