package toml

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
	"github.com/rs/zerolog"
)

type SessionStore struct {
	file   *tomlFile
	logger zerolog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(path string, logger zerolog.Logger) (*SessionStore, error) {
	file, err := newTOMLFile(path, "session")
	if err != nil {
		return nil, err
	}

	return &SessionStore{file: file, logger: logger}, nil
}

// Load returns nil when no session is stored. A file that cannot be decoded
// is removed and treated as absent.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	var schema sessionSchema
	found, err := s.file.read(&schema)
	if !found {
		return nil, err
	}
	if err == nil {
		if versionErr := validateVersion("session", schema.Version); versionErr != nil {
			return nil, versionErr
		}
	}

	var session *domain.Session
	if err == nil {
		session, err = fromSessionSchema(schema)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.file.path).Msg("discarding unreadable session")
		if removeErr := s.file.remove(); removeErr != nil {
			return nil, removeErr
		}
		return nil, nil
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	schema, err := toSessionSchema(session)
	if err != nil {
		return err
	}

	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	return s.file.write(schema)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	return s.file.remove()
}

func toSessionSchema(session domain.Session) (sessionSchema, error) {
	schema := sessionSchema{
		Version: currentSchemaVersion,
		Token:   session.Token,
	}

	if session.User != nil {
		schema.User = userSchema{
			ID:        session.User.ID.Value,
			IDNumeric: session.User.ID.Numeric,
			Role:      string(session.User.Role),
			Name:      session.User.Name,
			Phone:     session.User.Phone,
		}
		if len(session.User.Extra) > 0 {
			encoded, err := json.Marshal(session.User.Extra)
			if err != nil {
				return sessionSchema{}, fmt.Errorf("encode session user: %w", err)
			}
			schema.User.Extra = string(encoded)
		}
	}

	if len(session.Stats) > 0 {
		encoded, err := json.Marshal(session.Stats)
		if err != nil {
			return sessionSchema{}, fmt.Errorf("encode session stats: %w", err)
		}
		schema.Stats = string(encoded)
	}

	return schema, nil
}

func fromSessionSchema(schema sessionSchema) (*domain.Session, error) {
	session := &domain.Session{
		Token: schema.Token,
		Stats: map[string]any{},
	}

	if schema.User != (userSchema{}) {
		session.User = &domain.User{
			ID:    domain.FlexString{Value: schema.User.ID, Numeric: schema.User.IDNumeric},
			Role:  domain.Role(schema.User.Role),
			Name:  schema.User.Name,
			Phone: schema.User.Phone,
		}
		if schema.User.Extra != "" {
			if err := json.Unmarshal([]byte(schema.User.Extra), &session.User.Extra); err != nil {
				return nil, fmt.Errorf("decode session user: %w", err)
			}
		}
	}

	if schema.Stats != "" {
		if err := json.Unmarshal([]byte(schema.Stats), &session.Stats); err != nil {
			return nil, fmt.Errorf("decode session stats: %w", err)
		}
	}

	return session, nil
}
