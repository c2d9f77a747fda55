// Package routing implements the Route Installer (SPEC_FULL.md §4.9):
// it turns a parsed IPConfig into address/route operations against
// the host, shelling out through the PAL.Commander port exactly the
// way the teacher's network_tools backends drive iptables/nft.
package routing

import (
	"fmt"
	"net/netip"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
	"fortivpn/infrastructure/PAL"
)

// Installer applies an IPConfig to a named tun/tap interface using
// `ip addr` / `ip route`. Attaching packets to the device itself is
// out of scope; Installer only issues the routing-table side effects
// the negotiated configuration implies.
type Installer struct {
	commander PAL.Commander
	logger    application.Logger
	iface     string
}

func NewInstaller(commander PAL.Commander, logger application.Logger, iface string) *Installer {
	return &Installer{commander: commander, logger: logger, iface: iface}
}

// Apply installs the assigned address(es), DNS-implied routes are left
// to the resolver; here we install the interface address and the
// split-include or default route set, per cfg.DefaultRoute /
// cfg.SplitInclude (domain/fortinet.IPConfig.FinalizeDefaultRoute).
func (in *Installer) Apply(cfg *fortinet.IPConfig) error {
	if cfg.IPv4Addr.IsValid() {
		if err := in.run("ip", "addr", "add", cfg.IPv4Addr.String()+"/32", "dev", in.iface); err != nil {
			return err
		}
	}
	if cfg.IPv6Addr.IsValid() {
		prefix := fmt.Sprintf("%s/%d", cfg.IPv6Addr.String(), cfg.IPv6Prefix)
		if err := in.run("ip", "-6", "addr", "add", prefix, "dev", in.iface); err != nil {
			return err
		}
	}

	if err := in.run("ip", "link", "set", "dev", in.iface, "up"); err != nil {
		return err
	}

	for _, r := range cfg.SplitInclude {
		if err := in.installSplitRoute(r); err != nil {
			in.logger.Printf("route install: skipping malformed split route %v: %v", r, err)
		}
	}

	if cfg.DefaultRoute {
		if err := in.run("ip", "route", "add", "default", "dev", in.iface); err != nil {
			return err
		}
	}

	return nil
}

func (in *Installer) installSplitRoute(r fortinet.SplitRoute) error {
	if r.PrefixLen > 0 {
		prefix := fmt.Sprintf("%s/%d", r.Address.String(), r.PrefixLen)
		return in.run("ip", "-6", "route", "add", prefix, "dev", in.iface)
	}
	if !r.IPv4Mask.IsValid() {
		return fmt.Errorf("split route for %s has no mask or prefix", r.Address)
	}
	prefixLen, err := maskToPrefixLen(r.IPv4Mask)
	if err != nil {
		return err
	}
	prefix := fmt.Sprintf("%s/%d", r.Address.String(), prefixLen)
	return in.run("ip", "route", "add", prefix, "dev", in.iface)
}

func maskToPrefixLen(mask netip.Addr) (int, error) {
	if !mask.Is4() {
		return 0, fmt.Errorf("mask %s is not an IPv4 address", mask)
	}
	b := mask.As4()
	n := 0
	seenZero := false
	for _, octet := range b {
		for bit := 7; bit >= 0; bit-- {
			set := octet&(1<<uint(bit)) != 0
			if set {
				if seenZero {
					return 0, fmt.Errorf("mask %s is not contiguous", mask)
				}
				n++
			} else {
				seenZero = true
			}
		}
	}
	return n, nil
}

func (in *Installer) run(name string, args ...string) error {
	out, err := in.commander.CombinedOutput(name, args...)
	if err != nil {
		return fortinet.NewTransportError(fmt.Errorf("%s %v: %w: %s", name, args, err, out))
	}
	return nil
}
