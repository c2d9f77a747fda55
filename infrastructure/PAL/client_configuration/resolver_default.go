//go:build !darwin

package client_configuration

import (
	"os"
	"path/filepath"
)

// DefaultResolver is used on every platform except darwin, which has
// its own resolver_darwin.go variant.
type DefaultResolver struct {
}

func NewDefaultResolver() Resolver {
	return DefaultResolver{}
}

func (r DefaultResolver) Resolve() (string, error) {
	return filepath.Join(string(os.PathSeparator), "etc", "fortivpn", "client_configuration.json"), nil
}
