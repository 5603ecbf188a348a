package utils

import (
	"fmt"
	"os"

	"github.com/elearning/tcpopt/internal/config"
)

func ReadConfig(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	conf, err := config.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	return conf, nil
}
