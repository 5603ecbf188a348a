package config

import "fmt"

// TypeMessage is a payload sent to the peer as is, without any framing.
type TypeMessage struct {
	Value []byte
}

func (t *TypeMessage) Set(value string) error {
	if value == "" {
		return fmt.Errorf("message cannot be empty")
	}

	t.Value = []byte(value)

	return nil
}

func (t TypeMessage) Get(defaultValue string) []byte {
	if len(t.Value) == 0 {
		return []byte(defaultValue)
	}

	return t.Value
}

func (t *TypeMessage) UnmarshalText(data []byte) error {
	return t.Set(string(data))
}

func (t TypeMessage) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeMessage) String() string {
	return string(t.Value)
}
