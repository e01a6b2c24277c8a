package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetUserConfigDir(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		expectXDG bool
	}{
		{
			name:      "XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			expectXDG: true,
		},
		{
			name:      "without XDG",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore environment
			origXDG := os.Getenv("XDG_CONFIG_HOME")
			defer func() {
				if origXDG != "" {
					_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
				} else {
					_ = os.Unsetenv("XDG_CONFIG_HOME")
				}
			}()

			if tt.xdgConfig != "" {
				_ = os.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			} else {
				_ = os.Unsetenv("XDG_CONFIG_HOME")
			}

			dir, err := getUserConfigDir()
			if err != nil {
				t.Fatalf("getUserConfigDir() error = %v", err)
			}

			if tt.expectXDG {
				expected := filepath.Join(tt.xdgConfig, "hound")
				if dir != expected {
					t.Errorf("getUserConfigDir() = %q, want %q", dir, expected)
				}
				return
			}
			if !filepath.IsAbs(dir) {
				t.Errorf("getUserConfigDir() returned non-absolute path: %q", dir)
			}
			if filepath.Base(dir) != "hound" {
				t.Errorf("getUserConfigDir() = %q, want basename 'hound'", dir)
			}
		})
	}
}

func TestGetUserCacheDir(t *testing.T) {
	origXDG := os.Getenv("XDG_CACHE_HOME")
	defer func() {
		if origXDG != "" {
			_ = os.Setenv("XDG_CACHE_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	_ = os.Setenv("XDG_CACHE_HOME", "/custom/cache")
	dir, err := getUserCacheDir()
	if err != nil {
		t.Fatalf("getUserCacheDir() error = %v", err)
	}
	if expected := filepath.Join("/custom/cache", "hound"); dir != expected {
		t.Errorf("getUserCacheDir() = %q, want %q", dir, expected)
	}

	_ = os.Unsetenv("XDG_CACHE_HOME")
	dir, err = getUserCacheDir()
	if err != nil {
		t.Fatalf("getUserCacheDir() error = %v", err)
	}
	if !filepath.IsAbs(dir) || filepath.Base(dir) != "hound" {
		t.Errorf("getUserCacheDir() = %q, want absolute path ending in 'hound'", dir)
	}
}

func TestPathManagerPaths(t *testing.T) {
	pm, err := newPathManager()
	if err != nil {
		t.Fatalf("newPathManager() error = %v", err)
	}

	tests := []struct {
		name   string
		getter func() string
	}{
		{name: "ConfigDir", getter: pm.ConfigDir},
		{name: "CacheDir", getter: pm.CacheDir},
		{name: "ConfigFile", getter: pm.ConfigFile},
		{name: "AliasFile", getter: pm.AliasFile},
		{name: "ProjectAliasFile", getter: pm.ProjectAliasFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.getter()
			if result == "" {
				t.Errorf("%s() returned empty string", tt.name)
			}
			if !filepath.IsAbs(result) {
				t.Errorf("%s() = %q, want absolute path", tt.name, result)
			}
		})
	}
}

func TestAliasSearchPaths(t *testing.T) {
	ResetPathManager()
	defer ResetPathManager()

	if err := InitPaths(); err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}

	paths := AliasSearchPaths()
	if len(paths) != 2 {
		t.Fatalf("AliasSearchPaths() returned %d paths, want 2", len(paths))
	}
	for i, path := range paths {
		if filepath.Base(path) != "aliases.yaml" {
			t.Errorf("AliasSearchPaths()[%d] = %q, want an aliases.yaml path", i, path)
		}
	}
}

func TestResetPathManager(t *testing.T) {
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		if origXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", origXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
		ResetPathManager()
	}()

	ResetPathManager()
	_ = os.Setenv("XDG_CONFIG_HOME", "/first/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("first InitPaths() error = %v", err)
	}
	first := GetConfigDir()
	if expected := filepath.Join("/first/config", "hound"); first != expected {
		t.Errorf("first GetConfigDir() = %q, want %q", first, expected)
	}

	ResetPathManager()
	_ = os.Setenv("XDG_CONFIG_HOME", "/second/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("second InitPaths() error = %v", err)
	}
	second := GetConfigDir()
	if expected := filepath.Join("/second/config", "hound"); second != expected {
		t.Errorf("second GetConfigDir() = %q, want %q", second, expected)
	}

	if first == second {
		t.Error("ResetPathManager() did not allow re-initialization with different config")
	}
}
