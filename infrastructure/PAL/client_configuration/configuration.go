package client_configuration

// Configuration is the persisted, user-editable connection profile:
// everything Tunnel Bringup and the Auth Form Driver need to reach a
// specific gateway without re-prompting for it every run.
type Configuration struct {
	Host string `json:"Host"`
	Port int    `json:"Port"`

	Username string `json:"Username,omitempty"`

	// InsecureSkipVerify disables TLS certificate validation, for
	// gateways behind a self-signed or internal CA. Off by default.
	InsecureSkipVerify bool `json:"InsecureSkipVerify,omitempty"`

	// RouteTable is loaded from the configuration file but not read by
	// the Route Installer: split/default routes always go into the main
	// table.
	RouteTable int `json:"RouteTable,omitempty"`
}
