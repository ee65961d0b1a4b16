package toml

import (
	"context"
	"time"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
)

type SettingsStore struct {
	file *tomlFile
}

var _ ports.SettingsStore = (*SettingsStore)(nil)

func NewSettingsStore(path string) (*SettingsStore, error) {
	file, err := newTOMLFile(path, "settings")
	if err != nil {
		return nil, err
	}

	return &SettingsStore{file: file}, nil
}

func (s *SettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	s.file.mu.RLock()
	defer s.file.mu.RUnlock()

	var schema settingsSchema
	if _, err := s.file.read(&schema); err != nil {
		return domain.Settings{}, err
	}
	if err := validateVersion("settings", schema.Version); err != nil {
		return domain.Settings{}, err
	}

	return domain.Settings{
		APIBaseOverride: schema.APIBaseOverride,
		ResetCodeSentAt: parseTime(schema.ResetCodeSentAt),
	}, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	return s.file.write(settingsSchema{
		Version:         currentSchemaVersion,
		APIBaseOverride: settings.APIBaseOverride,
		ResetCodeSentAt: formatTime(settings.ResetCodeSentAt),
	})
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
