package client_configuration

import (
	"encoding/json"
	"fmt"
	"os"
)

type reader struct {
	path string
}

func newReader(path string) *reader {
	return &reader{path: path}
}

func (r *reader) read() (*Configuration, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("configuration file %s is not valid JSON: %w", r.path, err)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("configuration file %s is missing Host", r.path)
	}
	if cfg.Port == 0 {
		cfg.Port = 443
	}
	return &cfg, nil
}
