package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/cfpwatch/internal/model"
)

func TestKey_Namespaced(t *testing.T) {
	a := Key("page", "https://iscaconf.org/isca2026/")
	b := Key("search", "https://iscaconf.org/isca2026/")
	if a == b {
		t.Error("keys in different namespaces should differ")
	}
	if !strings.HasPrefix(a, "cfpwatch:v1:page:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
	if Key("page", "a", "b") == Key("page", "ab") {
		t.Error("key parts should not concatenate ambiguously")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	value := []byte("<html>ISCA</html>")
	if err := c.Set("k", value, 0); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'

	got, ok := c.Get("k")
	if !ok || string(got) != "<html>ISCA</html>" {
		t.Errorf("expected stored copy, got %q, %v", got, ok)
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewDiskCache(t.TempDir(), time.Hour)
	c.now = func() time.Time { return now }

	if err := c.Set(Key("page", "u"), []byte("body"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, ok := c.Get(Key("page", "u")); !ok || string(got) != "body" {
		t.Fatalf("expected hit, got %q, %v", got, ok)
	}

	now = now.Add(2 * time.Hour)
	if _, ok := c.Get(Key("page", "u")); ok {
		t.Error("expected miss after TTL")
	}
	if err := c.Delete(Key("page", "u")); err != nil {
		t.Errorf("deleting a missing entry should not fail: %v", err)
	}
}

func TestDiskCache_Layout(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := Key("page", "https://iscaconf.org/isca2026/")
	if err := c.Set(key, []byte("body"), 0); err != nil {
		t.Fatal(err)
	}
	hash := key[strings.LastIndex(key, ":")+1:]
	if _, err := os.Stat(filepath.Join(dir, "page", hash+".json")); err != nil {
		t.Errorf("namespaced entry not found: %v", err)
	}

	if err := c.Set("plain:key", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plain_key.json")); err != nil {
		t.Errorf("plain entry not found: %v", err)
	}
	if got, ok := c.Get("plain:key"); !ok || string(got) != "v" {
		t.Errorf("Get(plain:key) = %q, %v", got, ok)
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	if err := os.WriteFile(filepath.Join(dir, "k.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("corrupt entry should be a miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	memory := NewMemoryCache(time.Minute, time.Minute)
	disk := NewDiskCache(t.TempDir(), time.Hour)
	layered := NewLayered(memory, disk)

	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if got, ok := layered.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q, %v", got, ok)
	}
	if _, ok := memory.Get("k"); !ok {
		t.Error("disk hit should be promoted to memory")
	}

	if err := layered.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := layered.Get("k"); ok {
		t.Error("expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(model.CacheConfig{Enabled: false}).(Noop); !ok {
		t.Error("disabled cache should be Noop")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, MemoryTTL: time.Minute}).(*MemoryCache); !ok {
		t.Error("cache without dir should be memory-only")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("cache with dir should be layered")
	}
}
