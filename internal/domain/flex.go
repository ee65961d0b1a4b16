package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string or number. Record ids arrive as either
// depending on the backend route.
type FlexString struct {
	Value   string
	Numeric bool
}

func NewFlexString(value string) FlexString {
	return FlexString{Value: value}
}

func (f FlexString) String() string {
	return f.Value
}

func (f FlexString) IsZero() bool {
	return f.Value == ""
}

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = FlexString{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString{Value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		// booleans and objects keep their literal text
		*f = FlexString{Value: string(trimmed)}
		return nil
	}

	*f = FlexString{Value: n.String(), Numeric: true}
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	if f.Numeric {
		if _, err := strconv.ParseFloat(f.Value, 64); err == nil {
			return []byte(f.Value), nil
		}
	}

	return json.Marshal(f.Value)
}

// FlexNumber accepts a JSON number or a numeric string. Valid is false when
// the field was absent, null or not numeric.
type FlexNumber struct {
	Value float64
	Valid bool
}

func NewFlexNumber(value float64) FlexNumber {
	return FlexNumber{Value: value, Valid: true}
}

func (f FlexNumber) Float() float64 {
	if !f.Valid || math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
		return 0
	}

	return f.Value
}

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*f = FlexNumber{}

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	raw := string(trimmed)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	*f = FlexNumber{Value: parsed, Valid: true}
	return nil
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}

	return []byte(FormatNumber(f.Value)), nil
}

// FormatNumber renders a float in its shortest round-trip form.
func FormatNumber(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0"
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

func FormatFixed(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
