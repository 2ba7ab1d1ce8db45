package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/fitscout/internal/config"
	"github.com/hyperjump/fitscout/internal/embedding"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/storage"
	"go.uber.org/zap"
)

const seedDir = "../../data"

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after text are moved first",
			args:     []string{"running shoes", "-output", "json"},
			expected: []string{"-output", "json", "running shoes"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-output", "json", "running shoes"},
			expected: []string{"-output", "json", "running shoes"},
		},
		{
			name:     "text only returns unchanged",
			args:     []string{"linen shirt"},
			expected: []string{"linen shirt"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"leather", "belt", "-server", "http://localhost:8787"},
			expected: []string{"-server", "http://localhost:8787", "leather", "belt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"shoes"}, "shoes"},
		{"multiple words", []string{"running", "shoes"}, "running shoes"},
		{"quoted phrase", []string{"running shoes"}, "running shoes"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery(tt.args); got != tt.expected {
				t.Errorf("buildQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestMeasurementFlags(t *testing.T) {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	mf := registerMeasurementFlags(fs)
	if err := fs.Parse([]string{"-chest", "96", "-foot", "270"}); err != nil {
		t.Fatal(err)
	}
	m := mf.measurements()
	if v, ok := m.Chest(); !ok || v != 96 {
		t.Errorf("chest = %v, %v", v, ok)
	}
	if v, ok := m.Foot(); !ok || v != 270 {
		t.Errorf("foot = %v, %v", v, ok)
	}
	if m.WaistCM != nil || m.HipCM != nil {
		t.Error("unset flags must stay nil")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_defaultsWhenNoFile(t *testing.T) {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		t.Skip("system config present")
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "" {
		t.Errorf("resolved = %q, want empty for built-in defaults", resolved)
	}
	if cfg.Server.Port != 8787 || cfg.Search.Limit() != 24 {
		t.Errorf("unexpected defaults: port %d, limit %d", cfg.Server.Port, cfg.Search.Limit())
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
search:
  mode: strict
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Search.Limit() != 6 {
		t.Errorf("strict mode limit = %d, want 6", cfg.Search.Limit())
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = seedDir
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "fitscout.db")
	cfg.Embedding.Provider = embedding.ProviderHash
	cfg.Embedding.Dimensions = 384
	return cfg
}

func TestInitializeComponents_Files(t *testing.T) {
	cfg := testConfig(t)
	c, err := initializeComponents(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if c.Storage != nil {
		t.Error("files source should not open the database")
	}
	s, err := c.Sizer.Suggest(&models.SizeRequest{Brand: "nike", Category: "shoes",
		Measurements: models.Measurements{FootMM: models.Float(270)}})
	if err != nil {
		t.Fatal(err)
	}
	if s.SizeLabel != "9" {
		t.Errorf("size = %q, want 9", s.SizeLabel)
	}
	resp, err := c.Finder.Find(context.Background(), &models.FindRequest{Text: "running shoes nike"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Strategy != "tags" || resp.Items[0].ID != "nike-pegasus-41" {
		t.Errorf("unexpected find response: %+v", resp)
	}
}

func TestImportEmbedAndServeFromSQLite(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	logger := zap.NewNop()

	summary, err := importCatalog(ctx, seedDir, cfg.Storage.DatabasePath, logger)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Brands != 3 || summary.Products != 6 || summary.Embedded != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.DiskBytes <= 0 {
		t.Error("expected a non-empty database")
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	embedder := embedding.NewHashEmbedder(384)
	n, err := embedProducts(ctx, store, embedder, 4, false, logger)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("embedded %d products, want 6", n)
	}
	again, err := embedProducts(ctx, store, embedder, 4, false, logger)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Errorf("second run embedded %d products, want 0", again)
	}
	_ = store.Close()

	cfg.Data.Source = config.SourceSQLite
	c, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	resp, err := c.Finder.Find(ctx, &models.FindRequest{Text: "leather belt"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Strategy != "embedding" {
		t.Errorf("strategy = %q, want embedding", resp.Strategy)
	}
	if resp.Items[0].ID != "uniqlo-leather-belt" {
		t.Errorf("top item = %s, want uniqlo-leather-belt", resp.Items[0].ID)
	}
}
