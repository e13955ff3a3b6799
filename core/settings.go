package core

import "context"

type (
	// SMSTemplates are the notification texts rendered with {placeholder} tokens.
	SMSTemplates struct {
		FullPayment     string `json:"full_payment"`
		PartialPayment  string `json:"partial_payment"`
		PaymentReminder string `json:"payment_reminder"`
	}

	SMSSettings struct {
		Enabled    bool         `json:"enabled"`
		Provider   string       `json:"provider"` // mnotify | hubtel | twilio | anything else -> generic
		APIKey     string       `json:"api_key"`
		APIURL     string       `json:"api_url"`
		SenderName string       `json:"sender_name"`
		Templates  SMSTemplates `json:"templates"`
	}

	// SystemSettings is the process-wide configuration managed by admins.
	// The core services only ever read it.
	SystemSettings struct {
		AcademicYear         string      `json:"academic_year"`
		AcademicTerm         string      `json:"academic_term"`
		DefaultPaymentAmount float64     `json:"default_payment_amount"`
		AllowPartialPayments bool        `json:"allow_partial_payments"`
		SystemName           string      `json:"system_name"`
		Department           string      `json:"department"`
		Faculty              string      `json:"faculty"`
		Institution          string      `json:"institution"`
		Currency             string      `json:"currency"`
		PaymentDeadline      string      `json:"payment_deadline"`
		ContactEmail         string      `json:"contact_email"`
		ContactPhone         string      `json:"contact_phone"`
		WebsiteURL           string      `json:"website_url"`
		SMS                  SMSSettings `json:"sms"`
	}

	SettingsRepository interface {
		GetSettings(ctx context.Context) (SystemSettings, error)
		SaveSettings(ctx context.Context, settings SystemSettings) (SystemSettings, error)
	}
)

// DefaultSystemSettings returns the settings a fresh deployment starts with.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		AcademicYear:         "24",
		AcademicTerm:         "First Semester",
		DefaultPaymentAmount: 2000,
		AllowPartialPayments: true,
		SystemName:           "TTU Computer Science Payment System",
		Department:           "Computer Science",
		Faculty:              "Applied Sciences",
		Institution:          "Takoradi Technical University",
		Currency:             "GHS",
		SMS: SMSSettings{
			Provider:   "mnotify",
			SenderName: "TTU-CS",
			Templates: SMSTemplates{
				FullPayment: "Dear {studentName}, your payment of {amount} has been received in full. " +
					"Thank you for your payment. TTU Computer Science Dept.",
				PartialPayment: "Dear {studentName}, your partial payment of {amount} has been received. " +
					"Outstanding balance: {remainingBalance}. TTU Computer Science Dept.",
				PaymentReminder: "Dear {studentName}, this is a reminder that you have an outstanding balance " +
					"of {remainingBalance}. Please make payment before {paymentDeadline}. TTU Computer Science Dept.",
			},
		},
	}
}
