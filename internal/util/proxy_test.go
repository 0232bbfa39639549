package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "localhost,.example.org")

	tests := []struct {
		url  string
		want string
	}{
		{"http://iscaconf.org/isca2026/", "http://proxy.internal:3128"},
		{"https://iscaconf.org/isca2026/", "http://proxy.internal:3128"},
		{"https://conf.example.org/cfp", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := proxy(req)
			if err != nil {
				t.Fatalf("proxy func failed: %v", err)
			}
			gotStr := ""
			if got != nil {
				gotStr = got.String()
			}
			if gotStr != tt.want {
				t.Errorf("proxy(%s) = %q, want %q", tt.url, gotStr, tt.want)
			}
		})
	}
}
