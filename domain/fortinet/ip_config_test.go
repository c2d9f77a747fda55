package fortinet

import (
	"net/netip"
	"testing"
)

func TestFinalizeDefaultRoute_IPv4NoSplit(t *testing.T) {
	c := &IPConfig{IPv4Addr: netip.MustParseAddr("10.0.0.5")}
	c.FinalizeDefaultRoute()

	if !c.DefaultRoute {
		t.Fatal("expected default route installed")
	}
	if c.IPv4Mask != netip.MustParseAddr("0.0.0.0") {
		t.Fatalf("expected netmask 0.0.0.0, got %v", c.IPv4Mask)
	}
}

func TestFinalizeDefaultRoute_SplitTunnelDisablesDefault(t *testing.T) {
	c := &IPConfig{IPv4Addr: netip.MustParseAddr("10.0.0.5")}
	c.AddSplitInclude(SplitRoute{Address: netip.MustParseAddr("192.168.1.0"), IPv4Mask: netip.MustParseAddr("255.255.255.0")})
	c.FinalizeDefaultRoute()

	if c.DefaultRoute {
		t.Fatal("expected default route disabled with a split-include present")
	}
}

func TestFinalizeDefaultRoute_IPv6OnlyNeverSynthesizesDefault(t *testing.T) {
	c := &IPConfig{IPv6Addr: netip.MustParseAddr("2001:db8::1"), IPv6Prefix: 64}
	c.FinalizeDefaultRoute()

	if c.DefaultRoute {
		t.Fatal("IPv6-only config must not synthesize an IPv4 default route")
	}
}

// TestFinalizeDefaultRoute_ResetsFromSeededTrue pins the case the
// parser actually hits: Parse seeds DefaultRoute true before any
// element is visited, so an IPv6-only document must still clear it.
func TestFinalizeDefaultRoute_ResetsFromSeededTrue(t *testing.T) {
	c := &IPConfig{DefaultRoute: true, IPv6Addr: netip.MustParseAddr("2001:db8::1"), IPv6Prefix: 64}
	c.FinalizeDefaultRoute()

	if c.DefaultRoute {
		t.Fatal("expected DefaultRoute reset to false with no IPv4 address assigned")
	}
	if c.IPv4Mask.IsValid() {
		t.Fatalf("expected no IPv4 mask synthesized, got %v", c.IPv4Mask)
	}
}

func TestAppendDNSCapsAtThree(t *testing.T) {
	c := &IPConfig{}
	for i := 0; i < 5; i++ {
		c.AppendDNS(netip.MustParseAddr("8.8.8.8"))
	}
	if len(c.DNS) != 3 {
		t.Fatalf("expected DNS list capped at 3, got %d", len(c.DNS))
	}
}

func TestAppendSearchDomainJoinsWithSpace(t *testing.T) {
	c := &IPConfig{}
	c.AppendSearchDomain("corp.example.com")
	c.AppendSearchDomain("eng.example.com")
	if c.SearchDomains != "corp.example.com eng.example.com" {
		t.Fatalf("unexpected search domains: %q", c.SearchDomains)
	}
}
