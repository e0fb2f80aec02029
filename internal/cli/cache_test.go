package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/tikzdoc/pkg/cache"
)

func TestCacheDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honored on Linux")
	}
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirEndsWithAppName(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(false) = %T, want cache.NullCache", c)
	}

	if runtime.GOOS != "linux" {
		return
	}
	c, err = newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.FileCache", c)
	}
}

func TestCacheCommands(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honored on Linux")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runRoot(t, &out, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path printed %q, want %q", got, dir)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(context.Background(), key, []byte(key), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if err := runRoot(t, &out, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "a"); hit {
		t.Error("entry survived cache clear")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}
