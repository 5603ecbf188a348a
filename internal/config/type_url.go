package config

import (
	"fmt"
	"net/url"
)

type TypeURL struct {
	Value *url.URL
}

func (t *TypeURL) Set(value string) error {
	parsedURL, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("incorrect url (%s): %w", value, err)
	}

	switch parsedURL.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("unknown schema %s (%s)", parsedURL.Scheme, value)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("incorrect url %s", value)
	}

	t.Value = parsedURL

	return nil
}

func (t TypeURL) Get(defaultValue string) string {
	if t.Value == nil {
		return defaultValue
	}

	return t.Value.String()
}

func (t *TypeURL) UnmarshalText(data []byte) error {
	return t.Set(string(data))
}

func (t TypeURL) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeURL) String() string {
	if t.Value == nil {
		return ""
	}

	return t.Value.String()
}
