package domain

import "encoding/json"

type User struct {
	ID    FlexString `json:"id"`
	Role  Role       `json:"role"`
	Name  string     `json:"name"`
	Phone string     `json:"phone"`
	// Extra holds every other field the backend sent with the user, kept
	// so the stored session matches what login returned.
	Extra map[string]any `json:"-"`
}

var userFields = []string{"id", "role", "name", "phone"}

// userJSON is the plain decoding target; it has no methods, so it does
// not recurse into UnmarshalJSON.
type userJSON struct {
	ID    FlexString `json:"id"`
	Role  Role       `json:"role"`
	Name  string     `json:"name"`
	Phone string     `json:"phone"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var known userJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range userFields {
		delete(all, key)
	}
	if len(all) == 0 {
		all = nil
	}

	*u = User{ID: known.ID, Role: known.Role, Name: known.Name, Phone: known.Phone, Extra: all}
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+len(userFields))
	for key, value := range u.Extra {
		out[key] = value
	}
	out["id"] = u.ID
	out["role"] = u.Role
	out["name"] = u.Name
	out["phone"] = u.Phone

	return json.Marshal(out)
}

func (u User) DisplayName() string {
	if u.Name == "" {
		return "User"
	}

	return u.Name
}

type Session struct {
	Token string         `json:"token"`
	User  *User          `json:"user"`
	Stats map[string]any `json:"stats"`
}

// Valid reports whether the session can back a dashboard. A session missing
// either the token or the user forces the auth flow.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User != nil
}
