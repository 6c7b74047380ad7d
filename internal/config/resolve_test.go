package config

import (
	"errors"
	"testing"

	"mongo-keeper/internal/env"
	"mongo-keeper/internal/models"
)

func testFormula() *models.Formula {
	return &models.Formula{
		Name:     "mongodb",
		Version:  "7.0.14",
		Exec:     "bin/mongod",
		ExecArgs: "--port {port} --dbpath {data}",
		Port:     27017,
		Platforms: []models.PlatformSpec{
			{Name: "linux-x64", SourceURL: "https://example.com/mongodb-linux.tgz"},
			{Name: "darwin-arm64", SourceURL: "https://example.com/mongodb-darwin.tgz"},
		},
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MONGO_NAME", "MONGO_PORT", "PORT", "MONGO_PLATFORM", "MONGO_DIR"} {
		t.Setenv(key, "")
	}
}

func TestResolveExplicitOptionsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_NAME", "from-env")
	t.Setenv("MONGO_PORT", "28000")
	t.Setenv("MONGO_DIR", "/env/dir")

	cfg, err := Resolve(testFormula(), Options{
		Name:     "explicit",
		Platform: "linux-x64",
		Dir:      "/opt/dbs",
		Port:     27111,
		Args:     []string{"--quiet"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "explicit" {
		t.Errorf("name = %s, explicit option should win over env", cfg.Name)
	}
	if cfg.Port != 27111 {
		t.Errorf("port = %d, explicit option should win over env", cfg.Port)
	}
	if cfg.BaseDir != "/opt/dbs" {
		t.Errorf("dir = %s, explicit option should win over env", cfg.BaseDir)
	}
	if len(cfg.ExtraArgs) != 1 || cfg.ExtraArgs[0] != "--quiet" {
		t.Errorf("unexpected extra args: %v", cfg.ExtraArgs)
	}
}

func TestResolveEnvironmentLayer(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_NAME", "envname")
	t.Setenv("MONGO_PORT", "28100")
	t.Setenv("MONGO_DIR", "/env/dir")

	cfg, err := Resolve(testFormula(), Options{Platform: "linux-x64"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "envname" {
		t.Errorf("name = %s, want envname", cfg.Name)
	}
	if cfg.Port != 28100 {
		t.Errorf("port = %d, want 28100", cfg.Port)
	}
	if cfg.BaseDir != "/env/dir" {
		t.Errorf("dir = %s, want /env/dir", cfg.BaseDir)
	}
}

func TestResolveGenericPortFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "28222")

	cfg, err := Resolve(testFormula(), Options{Platform: "linux-x64"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 28222 {
		t.Errorf("port = %d, PORT should apply when MONGO_PORT is unset", cfg.Port)
	}
}

func TestResolveFormulaAndHardcodedDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve(testFormula(), Options{Platform: "linux-x64"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "default" {
		t.Errorf("name = %s, want default", cfg.Name)
	}
	if cfg.Port != 27017 {
		t.Errorf("port = %d, want formula default 27017", cfg.Port)
	}
	if cfg.BaseDir != env.DefaultBaseDir() {
		t.Errorf("dir = %s, want %s", cfg.BaseDir, env.DefaultBaseDir())
	}
	if cfg.Platform.SourceURL == "" {
		t.Error("platform entry not populated")
	}
}

func TestResolveUnsupportedPlatform(t *testing.T) {
	clearEnv(t)

	_, err := Resolve(testFormula(), Options{Platform: "unsupported-os"})
	if err == nil {
		t.Fatal("expected UnsupportedPlatformError")
	}
	var upErr *models.UnsupportedPlatformError
	if !errors.As(err, &upErr) {
		t.Fatalf("error is %T, want *models.UnsupportedPlatformError", err)
	}
	if upErr.Formula != "mongodb" || upErr.Platform != "unsupported-os" {
		t.Errorf("error lacks diagnosis fields: %+v", upErr)
	}
}

func TestResolvePlatformFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_PLATFORM", "darwin-arm64")

	cfg, err := Resolve(testFormula(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Platform.Name != "darwin-arm64" {
		t.Errorf("platform = %s, want darwin-arm64", cfg.Platform.Name)
	}
}
