package toml

import "fmt"

const currentSchemaVersion = 1

type sessionSchema struct {
	Version int        `toml:"version"`
	Token   string     `toml:"token"`
	User    userSchema `toml:"user"`
	// Stats is kept as JSON text; TOML has no null and the backend may
	// send one.
	Stats string `toml:"stats_json,omitempty"`
}

type userSchema struct {
	ID        string `toml:"id"`
	IDNumeric bool   `toml:"id_numeric,omitempty"`
	Role      string `toml:"role"`
	Name      string `toml:"name,omitempty"`
	Phone     string `toml:"phone,omitempty"`
	// Extra carries the user fields the client does not read, as JSON text.
	Extra string `toml:"extra_json,omitempty"`
}

type settingsSchema struct {
	Version         int    `toml:"version"`
	APIBaseOverride string `toml:"api_base_override,omitempty"`
	ResetCodeSentAt string `toml:"reset_code_sent_at,omitempty"`
}

func validateVersion(kind string, version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", kind, version, currentSchemaVersion)
	}

	return nil
}
