package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core"
)

func TestSettingsAPI(t *testing.T) {
	app := newTestApp(t)

	t.Run("retrieve returns the defaults on a fresh install", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/settings", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var settings core.SystemSettings
		decode(t, rec, &settings)
		assert.False(t, settings.SMS.Enabled)
		assert.Equal(t, "TTU-CS", settings.SMS.SenderName)
		assert.NotEmpty(t, settings.SMS.Templates.PaymentReminder)
	})

	t.Run("update replaces the document", func(t *testing.T) {
		settings := core.DefaultSystemSettings()
		settings.SMS.Enabled = true
		settings.SMS.Provider = "hubtel"
		settings.SMS.APIKey = "hb-key"
		settings.AcademicYear = "2024/2025"

		rec := app.request(t, http.MethodPut, "/v1/settings", settings)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = app.request(t, http.MethodGet, "/v1/settings", nil)
		var saved core.SystemSettings
		decode(t, rec, &saved)
		assert.True(t, saved.SMS.Enabled)
		assert.Equal(t, "hubtel", saved.SMS.Provider)
		assert.Equal(t, "2024/2025", saved.AcademicYear)
	})
}
