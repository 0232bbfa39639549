package resolve

import (
	"net/url"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// HostPolicy classifies candidate hosts into tiers and applies blocklists
type HostPolicy struct {
	globalBlocklist    []string
	officialHosts      map[string]bool
	officialSuffixes   []string
	commercialSuffixes []string
}

// Society and publisher hosts that run official conference sites
var defaultOfficialHosts = []string{
	"ieee.org",
	"acm.org",
	"usenix.org",
	"sigops.org",
	"sigarch.org",
	"sigda.org",
	"iacr.org",
	"computer.org",
}

var defaultOfficialSuffixes = []string{".org", ".edu", ".ac.uk", ".ac.jp", ".ac.kr", ".edu.cn", ".edu.au"}

var defaultCommercialSuffixes = []string{".com", ".net", ".info", ".biz", ".co"}

// NewHostPolicy creates a policy with the given global blocklist
func NewHostPolicy(globalBlocklist []string) *HostPolicy {
	p := &HostPolicy{
		officialHosts:      make(map[string]bool),
		officialSuffixes:   defaultOfficialSuffixes,
		commercialSuffixes: defaultCommercialSuffixes,
	}

	for _, d := range globalBlocklist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			p.globalBlocklist = append(p.globalBlocklist, d)
		}
	}

	for _, h := range defaultOfficialHosts {
		p.officialHosts[h] = true
	}

	return p
}

// Classify classifies a host into a tier
func (p *HostPolicy) Classify(host string) model.HostTier {
	host = normalizeHost(host)

	// Check society hosts, including subdomains
	for h := range p.officialHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return model.TierOfficial
		}
	}

	for _, suffix := range p.officialSuffixes {
		if strings.HasSuffix(host, suffix) {
			return model.TierOfficial
		}
	}

	for _, suffix := range p.commercialSuffixes {
		if strings.HasSuffix(host, suffix) {
			return model.TierCommercial
		}
	}

	return model.TierNeutral
}

// GloballyBlocked reports whether a host is an aggregator, wiki, social or blog host.
// Entries containing "/" match against host+path.
func (p *HostPolicy) GloballyBlocked(host, path string) (string, bool) {
	host = normalizeHost(host)
	hostPath := host + strings.ToLower(path)

	for _, d := range p.globalBlocklist {
		if strings.Contains(d, "/") {
			if strings.Contains(hostPath, d) {
				return d, true
			}
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return d, true
		}
	}
	return "", false
}

// AcronymBlocked reports whether host or path contains a known confusion for the acronym
func AcronymBlocked(host, path string, blocklist []string) (string, bool) {
	hostPath := normalizeHost(host) + strings.ToLower(path)
	for _, b := range blocklist {
		if b != "" && strings.Contains(hostPath, b) {
			return b, true
		}
	}
	return "", false
}

// SameHost compares the hosts of two URLs ignoring case and a leading "www."
func SameHost(a, b string) bool {
	return hostOf(a) == hostOf(b)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return strings.ToLower(rawURL)
	}
	return normalizeHost(parsed.Host)
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if idx := strings.LastIndex(host, ":"); idx > 0 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}
