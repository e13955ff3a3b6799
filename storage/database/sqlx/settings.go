package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
)

// settingsRepository keeps the single settings document as a JSONB row.
// A missing row means a fresh deployment; callers get the defaults and the
// first save creates the row.
type settingsRepository struct {
	db *sqlx.DB
}

var _ core.SettingsRepository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) *settingsRepository {
	return &settingsRepository{db: db}
}

func (repo settingsRepository) GetSettings(ctx context.Context) (core.SystemSettings, error) {
	var raw []byte
	if err := repo.db.GetContext(ctx, &raw, `SELECT data FROM system_settings WHERE id`); err != nil {
		if err == sql.ErrNoRows {
			return core.DefaultSystemSettings(), nil
		}
		return core.SystemSettings{}, errors.Wrap(err, "getting settings")
	}

	var settings core.SystemSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return core.SystemSettings{}, errors.Wrap(err, "decoding settings")
	}
	return settings, nil
}

func (repo settingsRepository) SaveSettings(ctx context.Context, settings core.SystemSettings) (core.SystemSettings, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return core.SystemSettings{}, errors.Wrap(err, "encoding settings")
	}

	query := `INSERT INTO system_settings (id, data, updated_at) VALUES (TRUE, $1, $2)
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.ExecContext(ctx, query, raw, time.Now().UTC()); err != nil {
		return core.SystemSettings{}, errors.Wrap(err, "saving settings")
	}
	return settings, nil
}
