package runner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// ErrNoSuchHost reports a domain that does not resolve at all. The batch loop
// records it as a per-domain error without spending two client invocations on
// it.
var ErrNoSuchHost = errors.New("no such host")

// DNSPrecheck resolves corpus hostnames against the system's configured
// resolvers before the differential fetches run.
type DNSPrecheck struct {
	servers []string
	client  *dns.Client
}

// NewDNSPrecheck loads resolvers from /etc/resolv.conf.
func NewDNSPrecheck(queryTimeout time.Duration) (*DNSPrecheck, error) {
	cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, fmt.Errorf("loading system resolvers: %w", err)
	}
	if len(cfg.Servers) == 0 {
		return nil, errors.New("no resolvers configured in /etc/resolv.conf")
	}
	var servers []string
	for _, s := range cfg.Servers {
		servers = append(servers, net.JoinHostPort(s, cfg.Port))
	}
	return &DNSPrecheck{
		servers: servers,
		client:  &dns.Client{Timeout: queryTimeout},
	}, nil
}

// Lookup queries for an A record of the hostname. A successful response, even
// with an empty answer section, counts as resolvable (the host may only have
// AAAA records; the fetch itself will sort that out). NXDOMAIN returns
// ErrNoSuchHost.
func (p *DNSPrecheck) Lookup(ctx context.Context, host string) error {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range p.servers {
		in, _, err := p.client.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			continue
		}
		switch in.Rcode {
		case dns.RcodeSuccess:
			return nil
		case dns.RcodeNameError:
			return fmt.Errorf("%s: %w", host, ErrNoSuchHost)
		default:
			lastErr = fmt.Errorf("%s: resolver answered %s", host, dns.RcodeToString[in.Rcode])
		}
	}
	return lastErr
}
