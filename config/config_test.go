package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Resend        struct {
		APIKey string `mapstructure:"api_key"`
		From   string `mapstructure:"from"`
	} `mapstructure:"resend"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{}
	cfg.ApplyDefaults()
	if cfg.Name != "tablekit" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Name != "tablekit" {
		t.Errorf("expected logging name propagated, got %q", cfg.Logging.Name)
	}

	debug := ServiceConfig{Debug: true}
	debug.ApplyDefaults()
	if debug.Logging.Level != "debug" {
		t.Errorf("expected debug level when Debug is set, got %q", debug.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := ServiceConfig{Name: "tablekit"}
	valid.ApplyDefaults()

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "moon" }, "config.environment must be one of"},
		{"invalid logging", func(c *ServiceConfig) { c.Logging.Format = "xml" }, "config.logging"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAMLAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tablekit.yml")
	yamlContent := `
name: notebook-tools
environment: staging
resend:
  from: demo@example.com
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("TKTEST_RESEND_API_KEY=re_123\n"), 0o644); err != nil {
		t.Fatalf("failed to write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TKTEST_RESEND_API_KEY") })

	var cfg testConfig
	err := LoadConfig("tablekit", &cfg,
		WithConfigFile(configPath),
		WithEnvFile(envPath),
		WithEnvPrefix("TKTEST_"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "notebook-tools" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config %+v", cfg.ServiceConfig)
	}
	if cfg.Resend.From != "demo@example.com" {
		t.Errorf("expected from from YAML, got %q", cfg.Resend.From)
	}
	if cfg.Resend.APIKey != "re_123" {
		t.Errorf("expected api key from .env, got %q", cfg.Resend.APIKey)
	}
}

func TestLoadConfigIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("RESEND", "not-a-section")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tablekit.yml")
	if err := os.WriteFile(configPath, []byte("resend:\n  from: a@b.co\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if err := LoadConfig("tablekit", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Resend.From != "a@b.co" {
		t.Errorf("expected section to survive unrelated env, got %q", cfg.Resend.From)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("tablekit", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithFileSystem(&mockFS{files: map[string]bool{}}),
	)
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"config/tablekit.yml": true,
		"config/.env":         true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("tablekit", LoaderConfig{})
	if files.ConfigFile != "./config/tablekit.yml" {
		t.Errorf("expected config file ./config/tablekit.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "config/.env" {
		t.Errorf("expected env next to config, got %q", files.EnvFile)
	}
}

func TestResolverUserConfigDir(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"/home/u/.config/tablekit/config.yml": true}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("tablekit", LoaderConfig{})
	if files.ConfigFile != "/home/u/.config/tablekit/config.yml" {
		t.Errorf("expected user config dir file, got %q", files.ConfigFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("RESEND_API_KEY")
	want := []string{"resend_api_key", "resend.api.key", "resend.api_key", "resend_api.key"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool {
	return m.files[filepath.Clean(path)] || m.files[path]
}
func (m *mockFS) LoadEnv(string) error             { return nil }
func (m *mockFS) UserConfigDir() (string, error) { return "/home/u/.config", nil }
