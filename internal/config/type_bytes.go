package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
)

// TypeBytes accepts either a plain number of bytes or a human-readable
// size like 8KiB or 16KB. Both KB and KiB mean 1024 bytes.
type TypeBytes struct {
	Value units.Base2Bytes
}

func (t *TypeBytes) Set(value string) error {
	value = strings.TrimSpace(value)

	if plain, err := strconv.ParseUint(value, 10, 31); err == nil { //nolint: gomnd
		t.Value = units.Base2Bytes(plain)

		return nil
	}

	parsed, err := units.ParseBase2Bytes(value)
	if err != nil {
		return fmt.Errorf("incorrect bytes value (%s): %w", value, err)
	}

	if parsed < 0 || int64(parsed) > int64(^uint32(0)>>1) {
		return fmt.Errorf("%s is out of range", value)
	}

	t.Value = parsed

	return nil
}

func (t TypeBytes) Get(defaultValue uint) uint {
	if t.Value == 0 {
		return defaultValue
	}

	return uint(t.Value)
}

func (t *TypeBytes) UnmarshalText(data []byte) error {
	return t.Set(string(data))
}

func (t TypeBytes) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeBytes) String() string {
	return strconv.FormatInt(int64(t.Value), 10) //nolint: gomnd
}
