package formula

import (
	"strings"
	"testing"

	"mongo-keeper/internal/models"
)

func sample(version string) *models.Formula {
	return &models.Formula{
		Name:     "sample",
		Version:  version,
		Exec:     "bin/sample",
		ExecArgs: "--port {port} --data {data}",
		Port:     9000,
		Platforms: []models.PlatformSpec{
			{Name: "linux-x64", SourceURL: "https://example.com/sample-" + version + ".tgz"},
		},
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&models.Formula{}); err == nil {
		t.Error("expected error for formula without name")
	}
	bad := sample("not-a-version")
	if err := r.Register(bad); err == nil {
		t.Error("expected error for unparsable version")
	}
	if err := r.Register(sample("1.2.3")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLookupPicksNewest(t *testing.T) {
	r := NewRegistry()
	for _, v := range []string{"1.9.0", "1.10.2", "1.2.5"} {
		if err := r.Register(sample(v)); err != nil {
			t.Fatalf("register %s: %v", v, err)
		}
	}
	f, err := r.Lookup("sample")
	if err != nil {
		t.Fatal(err)
	}
	// 1.10.2 > 1.9.0 under version ordering, not string ordering
	if f.Version != "1.10.2" {
		t.Errorf("Lookup picked %s, want 1.10.2", f.Version)
	}

	got, err := r.LookupVersion("sample", "1.2.5")
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != "1.2.5" {
		t.Errorf("LookupVersion picked %s, want 1.2.5", got.Version)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Lookup("nope"); err == nil {
		t.Error("expected error for unknown formula")
	}
}

func TestBuiltinTable(t *testing.T) {
	r := GetRegistry()
	f, err := r.Lookup("mongodb")
	if err != nil {
		t.Fatal(err)
	}
	if f.Port != 27017 {
		t.Errorf("mongodb default port = %d, want 27017", f.Port)
	}
	if !strings.Contains(f.ExecArgs, "{port}") || !strings.Contains(f.ExecArgs, "{data}") {
		t.Errorf("mongodb execArgs missing placeholders: %s", f.ExecArgs)
	}
	if _, ok := f.Platform("linux-x64"); !ok {
		t.Error("mongodb formula has no linux-x64 platform")
	}
	if _, err := r.Lookup("etcd"); err != nil {
		t.Errorf("etcd formula missing: %v", err)
	}
}

func TestDetectPlatformShape(t *testing.T) {
	p := DetectPlatform()
	if !strings.Contains(p, "-") {
		t.Errorf("platform identifier has no os-arch separator: %s", p)
	}
}
