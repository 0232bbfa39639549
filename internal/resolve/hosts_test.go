package resolve

import (
	"testing"

	"github.com/ppiankov/cfpwatch/internal/model"
)

func TestHostPolicy_Classify(t *testing.T) {
	policy := NewHostPolicy(nil)

	tests := []struct {
		host     string
		expected model.HostTier
		desc     string
	}{
		{"iscaconf.org", model.TierOfficial, ".org host"},
		{"www.cs.stanford.edu", model.TierOfficial, ".edu host"},
		{"www.usenix.org", model.TierOfficial, "society host with subdomain"},
		{"conf.ac.uk", model.TierOfficial, "UK academic host"},
		{"www.dac.com", model.TierCommercial, ".com host"},
		{"conf.example.net", model.TierCommercial, ".net host"},
		{"iccd2026.de", model.TierNeutral, "country host"},
		{"ISCACONF.ORG:443", model.TierOfficial, "case and port ignored"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := policy.Classify(tt.host); got != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.host, got)
			}
		})
	}
}

func TestHostPolicy_GloballyBlocked(t *testing.T) {
	policy := NewHostPolicy([]string{"wikicfp.com", "blogspot.com", "easychair.org/cfp"})

	tests := []struct {
		host    string
		path    string
		blocked bool
	}{
		{"www.wikicfp.com", "/cfp/servlet/event.showcfp", true},
		{"isca2026.blogspot.com", "/", true},
		{"notwikicfp.com", "/", false},
		{"easychair.org", "/cfp/ISCA2026", true},
		{"easychair.org", "/conferences/?conf=isca2026", false},
		{"iscaconf.org", "/isca2026/", false},
	}

	for _, tt := range tests {
		t.Run(tt.host+tt.path, func(t *testing.T) {
			_, blocked := policy.GloballyBlocked(tt.host, tt.path)
			if blocked != tt.blocked {
				t.Errorf("GloballyBlocked(%s, %s) = %v, want %v", tt.host, tt.path, blocked, tt.blocked)
			}
		})
	}
}

func TestAcronymBlocked(t *testing.T) {
	blocklist := []string{"microbiology", "microscopy"}

	if entry, blocked := AcronymBlocked("www.microbiology-conference.com", "/2026", blocklist); !blocked || entry != "microbiology" {
		t.Errorf("expected microbiology block, got %q, %v", entry, blocked)
	}
	if _, blocked := AcronymBlocked("microarch.org", "/micro59/", blocklist); blocked {
		t.Error("official MICRO host should not be blocked")
	}
}

func TestSameHost(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://iscaconf.org/isca2026/", "https://www.ISCAconf.org/isca2026/program", true},
		{"https://iscaconf.org/", "http://iscaconf.org:80/", true},
		{"https://iscaconf.org/", "https://isca2026.org/", false},
	}

	for _, tt := range tests {
		if got := SameHost(tt.a, tt.b); got != tt.want {
			t.Errorf("SameHost(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
