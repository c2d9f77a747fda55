package fortinet

import "net/netip"

// SplitRoute is one split-include destination, carried as the address
// family-appropriate textual mask/prefix rather than a computed value —
// the wire format gives us "ip/mask" (IPv4) or "ip/prefixlen" (IPv6)
// verbatim and callers downstream (route installer) re-derive a netip.Prefix.
type SplitRoute struct {
	Address netip.Addr
	// IPv4Mask / PrefixLen carry the mask/prefix as received on the
	// wire: a dotted-quad mask for IPv4 routes, a decimal prefix
	// length for IPv6 routes. Only one is valid, per Address's family.
	IPv4Mask  netip.Addr
	PrefixLen int
}

// IPConfig is the typed result of parsing a tunnel-config XML document.
type IPConfig struct {
	IPv4Addr    netip.Addr
	IPv4Mask    netip.Addr
	IPv6Addr    netip.Addr
	IPv6Prefix  int
	DNS         []netip.Addr // up to 3, IPv4 and IPv6 share the same slots
	SearchDomains string
	SplitInclude []SplitRoute

	// DefaultRoute is true iff no split-include route appeared and an
	// IPv4 address was assigned (post-pass in spec.md §4.2).
	DefaultRoute bool

	DTLSEnabled bool

	// AuthExpiration and IdleTimeout are durations in seconds as parsed
	// from the wire (auth-timeout@val, idle-timeout@val); the caller
	// adds them to the current time to get the Session's absolute
	// expiration timestamps (spec.md §4.2: "auth_expiration = now + val").
	AuthExpiration int64
	IdleTimeout    int64
	DPD            int64 // seconds between DPD probes
}

const maxDNSServers = 3

// AppendDNS appends a DNS server, capping the list at maxDNSServers as
// required by the IP-configuration invariant (spec.md §3).
func (c *IPConfig) AppendDNS(addr netip.Addr) {
	if len(c.DNS) >= maxDNSServers {
		return
	}
	c.DNS = append(c.DNS, addr)
}

// AppendSearchDomain appends a space-separated search domain.
func (c *IPConfig) AppendSearchDomain(domain string) {
	if domain == "" {
		return
	}
	if c.SearchDomains == "" {
		c.SearchDomains = domain
		return
	}
	c.SearchDomains += " " + domain
}

// AddSplitInclude appends a split-include route and clears DefaultRoute,
// per the invariant: any split-include present disables the default route.
func (c *IPConfig) AddSplitInclude(r SplitRoute) {
	c.SplitInclude = append(c.SplitInclude, r)
	c.DefaultRoute = false
}

// FinalizeDefaultRoute applies the post-pass rule from spec.md §4.2:
// if no split-include cleared the flag and an IPv4 address was assigned,
// install the default route with netmask 0.0.0.0.
func (c *IPConfig) FinalizeDefaultRoute() {
	if len(c.SplitInclude) > 0 {
		c.DefaultRoute = false
		return
	}
	if c.IPv4Addr.IsValid() {
		c.DefaultRoute = true
		c.IPv4Mask = netip.MustParseAddr("0.0.0.0")
		return
	}
	c.DefaultRoute = false
}
