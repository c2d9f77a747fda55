// Package configxml implements the Config XML Parser (spec.md §4.2):
// it turns a tunnel-config XML document into a typed IP configuration,
// tolerating the malformed-but-recoverable documents real Fortinet
// gateways are known to emit.
package configxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/netip"
	"strconv"

	"fortivpn/domain/fortinet"
)

// Parse decodes a tunnel-config XML document rooted at <sslvpn-tunnel>.
// Unlike a strict parser, Parse keeps whatever it successfully decoded
// before a malformed element or a truncated document was hit — only
// the absence of the root element itself is a hard failure, matching
// spec.md §4.2's "MUST accept malformed-but-recoverable documents" and
// "MUST reject absence of the root element".
func Parse(doc []byte) (*fortinet.IPConfig, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	cfg := &fortinet.IPConfig{DefaultRoute: true}
	sawRoot := false

	var path []string
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			// Lenient mode: stop decoding further elements but keep
			// whatever was already parsed, rather than discarding it.
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			if len(path) == 1 {
				if t.Name.Local != "sslvpn-tunnel" {
					return nil, fortinet.NewInvalidConfigError("root element is not sslvpn-tunnel")
				}
				sawRoot = true
				applyRoot(cfg, t)
			} else {
				applyElement(cfg, path, t)
			}
		case xml.EndElement:
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}

	if !sawRoot {
		return nil, fortinet.NewInvalidConfigError("missing sslvpn-tunnel root element")
	}

	cfg.FinalizeDefaultRoute()
	return cfg, nil
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrInt64(t xml.StartElement, name string) (int64, bool) {
	v, ok := attr(t, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

func attrInt(t xml.StartElement, name string) (int, bool) {
	v, ok := attr(t, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func applyRoot(cfg *fortinet.IPConfig, t xml.StartElement) {
	if v, ok := attr(t, "dtls"); ok && v == "1" {
		cfg.DTLSEnabled = true
	}
}

// applyElement dispatches on the element's local name, matching the
// authoritative table in spec.md §4.2, and consults the enclosing path
// only to tell ipv6 from ipv4 and split-tunnel-info addresses from others.
// path[0] is always "sslvpn-tunnel".
func applyElement(cfg *fortinet.IPConfig, path []string, t xml.StartElement) {
	switch t.Name.Local {
	case "auth-timeout":
		if v, ok := attrInt64(t, "val"); ok {
			cfg.AuthExpiration = v // caller adds "now"; parser records the raw duration
		}
	case "idle-timeout":
		if v, ok := attrInt64(t, "val"); ok {
			cfg.IdleTimeout = v
		}
	case "dtls-config":
		if v, ok := attrInt64(t, "heartbeat-interval"); ok && v != 0 {
			if cfg.DPD == 0 || v < cfg.DPD {
				cfg.DPD = v
			}
		}
	case "fos":
		// Informational logging only (spec.md §4.2); nothing to record.
	case "assigned-addr":
		if isIPv6Path(path) {
			if v, ok := attr(t, "ipv6"); ok {
				if a, err := netip.ParseAddr(v); err == nil {
					cfg.IPv6Addr = a
				}
			}
			if v, ok := attrInt(t, "prefix-len"); ok {
				cfg.IPv6Prefix = v
			}
		} else {
			if v, ok := attr(t, "ipv4"); ok {
				if a, err := netip.ParseAddr(v); err == nil {
					cfg.IPv4Addr = a
				}
			}
		}
	case "dns":
		if isIPv6Path(path) {
			if v, ok := attr(t, "ipv6"); ok {
				if a, err := netip.ParseAddr(v); err == nil {
					cfg.AppendDNS(a)
				}
			}
		} else {
			if v, ok := attr(t, "ip"); ok {
				if a, err := netip.ParseAddr(v); err == nil {
					cfg.AppendDNS(a)
				}
			}
		}
		if v, ok := attr(t, "domain"); ok {
			cfg.AppendSearchDomain(v)
		}
	case "split-dns":
		// Parsed but intentionally not acted upon (spec.md §1 Non-goals).
	case "addr":
		if !isSplitTunnelPath(path) {
			return
		}
		if isIPv6Path(path) {
			ip, okIP := attr(t, "ipv6")
			prefix, okPrefix := attrInt(t, "prefix-len")
			if !okIP || !okPrefix {
				return // malformed element: skip, do not add a partial route
			}
			a, err := netip.ParseAddr(ip)
			if err != nil {
				return
			}
			cfg.AddSplitInclude(fortinet.SplitRoute{Address: a, PrefixLen: prefix})
		} else {
			ip, okIP := attr(t, "ip")
			mask, okMask := attr(t, "mask")
			if !okIP || !okMask {
				return
			}
			a, err := netip.ParseAddr(ip)
			if err != nil {
				return
			}
			m, err := netip.ParseAddr(mask)
			if err != nil {
				return
			}
			cfg.AddSplitInclude(fortinet.SplitRoute{Address: a, IPv4Mask: m})
		}
	}
}

func isIPv6Path(path []string) bool {
	for _, p := range path {
		if p == "ipv6" {
			return true
		}
	}
	return false
}

func isSplitTunnelPath(path []string) bool {
	for _, p := range path {
		if p == "split-tunnel-info" {
			return true
		}
	}
	return false
}
