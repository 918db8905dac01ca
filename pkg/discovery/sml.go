package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"

	"github.com/snapbooks-app/peppol-lookup/pkg/identifier"
)

// ISO6523Scheme is the participant identifier scheme used across the PEPPOL
// network. The SML publishes every participant record beneath this label.
const ISO6523Scheme = "iso6523-actorid-upis"

// DefaultSMLDomain is the production eDelivery SML zone operated by the
// European Commission.
const DefaultSMLDomain = "edelivery.tech.ec.europa.eu"

// ExchangeFunc performs a single DNS query. It matches the signature of
// dns.Client.ExchangeContext so tests can substitute the network transport.
type ExchangeFunc func(ctx context.Context, msg *dns.Msg, addr string) (*dns.Msg, time.Duration, error)

// SMLClientConfig contains configuration for the SML client
type SMLClientConfig struct {
	// Domain is the SML zone queried for participant records
	// Defaults to DefaultSMLDomain
	Domain string

	// DNSServer is the DNS server to use for lookups (optional)
	// Format: "ip:port" (e.g., "8.8.8.8:53")
	// If empty, the first server from /etc/resolv.conf is used
	DNSServer string

	// Timeout bounds each DNS query
	// Defaults to 5 seconds
	Timeout time.Duration

	// Exchange performs the DNS query
	// If nil, the client's own ExchangeContext is used
	Exchange ExchangeFunc
}

// LookupResult is the outcome of an SML resolution. Hostname is the SMP
// host serving the participant's metadata and is set only when Registered
// is true.
type LookupResult struct {
	Registered bool
	Hostname   string
}

// SMLClient resolves participants against the PEPPOL SML directory.
// The SML is a DNS zone: a participant is registered exactly when the
// hostname derived from its identifier hash resolves to an address.
type SMLClient struct {
	config    SMLClientConfig
	dnsClient *dns.Client
}

// NewSMLClient creates a new SML client for the given zone
func NewSMLClient(domain string) *SMLClient {
	return NewSMLClientWithConfig(SMLClientConfig{Domain: domain})
}

// NewSMLClientWithConfig creates a new SML client with custom configuration
func NewSMLClientWithConfig(config SMLClientConfig) *SMLClient {
	if config.Domain == "" {
		config.Domain = DefaultSMLDomain
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	return &SMLClient{
		config:    config,
		dnsClient: &dns.Client{Timeout: config.Timeout},
	}
}

// Domain returns the SML zone this client queries.
func (c *SMLClient) Domain() string {
	return c.config.Domain
}

// Hostname derives the SMP hostname for a participant.
// Format: b-<md5 hex of canonical identifier>.<scheme>.<domain>
func (c *SMLClient) Hostname(p identifier.Participant) string {
	return fmt.Sprintf("b-%s.%s.%s", p.Hash(), ISO6523Scheme, c.config.Domain)
}

// Resolve checks whether a participant has a record in the SML zone.
//
// The zone carries no usable data in the record itself; existence of the
// derived hostname is the registration signal. The protocol gives no way
// to tell an unregistered participant from a failed lookup, so NXDOMAIN,
// SERVFAIL, timeouts and resolver misconfiguration all read as not
// registered. Every call queries DNS fresh; nothing is cached.
func (c *SMLClient) Resolve(ctx context.Context, p identifier.Participant) LookupResult {
	host := c.Hostname(p)
	if !c.hostExists(ctx, host) {
		return LookupResult{}
	}
	return LookupResult{Registered: true, Hostname: host}
}

// hostExists performs a single A-record query for the derived hostname.
// Registration requires a clean answer carrying at least one address;
// CNAME chains count as long as the chased answer includes an A record.
func (c *SMLClient) hostExists(ctx context.Context, host string) bool {
	dnsServer := c.config.DNSServer
	if dnsServer == "" {
		config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil || len(config.Servers) == 0 {
			return false
		}
		dnsServer = config.Servers[0] + ":" + config.Port
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	msg.RecursionDesired = true

	exchange := c.config.Exchange
	if exchange == nil {
		exchange = c.dnsClient.ExchangeContext
	}

	resp, _, err := exchange(ctx, msg, dnsServer)
	if err != nil || resp == nil || resp.Rcode != dns.RcodeSuccess {
		return false
	}

	for _, rr := range resp.Answer {
		if _, ok := rr.(*dns.A); ok {
			return true
		}
	}
	return false
}
