package inmemdb

import (
	"context"

	"github.com/ttucompsci/paytrack/core"
)

type settingsRepository struct {
	db *settingsTable
}

var _ core.SettingsRepository = (*settingsRepository)(nil)

func NewSettingsRepository(db *DB) *settingsRepository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) GetSettings(ctx context.Context) (core.SystemSettings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.db.settings == nil {
		return core.DefaultSystemSettings(), nil
	}
	return *repo.db.settings, nil
}

func (repo *settingsRepository) SaveSettings(ctx context.Context, settings core.SystemSettings) (core.SystemSettings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.settings = &settings
	return settings, nil
}
