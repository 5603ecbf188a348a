package config

import (
	"fmt"
	"strconv"
)

// TypeBool keeps track of whether the value was set at all, so
// a default of true can still be switched off explicitly.
type TypeBool struct {
	Value bool
	isSet bool
}

func (t *TypeBool) Set(value string) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value is not a boolean (%s): %w", value, err)
	}

	t.Value = parsed
	t.isSet = true

	return nil
}

func (t TypeBool) Get(defaultValue bool) bool {
	if !t.isSet {
		return defaultValue
	}

	return t.Value
}

func (t *TypeBool) UnmarshalJSON(data []byte) error {
	return t.Set(string(data))
}

func (t TypeBool) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeBool) String() string {
	return strconv.FormatBool(t.Value)
}
