package paths

import (
	"path/filepath"
	"reflect"
	"testing"

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
			{Name: "linux-x64", SourceURL: "https://fastdl.mongodb.org/linux/mongodb-linux-x86_64-ubuntu2204-7.0.14.tgz"},
		},
	}
}

func TestPlanLayout(t *testing.T) {
	f := testFormula()
	cfg := models.ResolvedConfig{
		Name:     "t1",
		Platform: f.Platforms[0],
		BaseDir:  "/base",
		Port:     27111,
	}
	p := Plan(f, cfg)

	if p.DataDir != filepath.Join("/base", "data", "t1", "mongodb") {
		t.Errorf("unexpected data dir: %s", p.DataDir)
	}
	if p.LogFile != filepath.Join("/base", "logs", "t1", "mongodb", "logs.txt") {
		t.Errorf("unexpected log file: %s", p.LogFile)
	}
	wantSource := filepath.Join("/base", "source", "mongodb", "7.0.14", "linux-x64",
		"mongodb-7.0.14-linux-x64.tgz")
	if p.SourceFile != wantSource {
		t.Errorf("unexpected source file: %s", p.SourceFile)
	}
	if p.ExtractDir != filepath.Join(p.SourceDir, "unpacked") {
		t.Errorf("unexpected extract dir: %s", p.ExtractDir)
	}
	if p.ExecFile != filepath.Join(p.ExtractDir, "bin", "mongod") {
		t.Errorf("unexpected exec file: %s", p.ExecFile)
	}
}

func TestPlanDeterministic(t *testing.T) {
	f := testFormula()
	cfg := models.ResolvedConfig{Name: "t1", Platform: f.Platforms[0], BaseDir: "/base", Port: 27111}

	first := Plan(f, cfg)
	for i := 0; i < 10; i++ {
		if got := Plan(f, cfg); !reflect.DeepEqual(got, first) {
			t.Fatalf("plan is not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestArchiveExt(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://fastdl.mongodb.org/linux/mongodb-linux-x86_64-ubuntu2204-7.0.14.tgz", "tgz"},
		{"https://github.com/etcd-io/etcd/releases/download/v3.5.17/etcd-v3.5.17-linux-amd64.tar.gz", "tar.gz"},
		{"https://fastdl.mongodb.org/windows/mongodb-windows-x86_64-7.0.14.zip", "zip"},
		{"https://example.com/pkg.tgz?token=abc", "tgz"},
	}
	for _, c := range cases {
		if got := ArchiveExt(c.url); got != c.want {
			t.Errorf("ArchiveExt(%s) = %s, want %s", c.url, got, c.want)
		}
	}
}
