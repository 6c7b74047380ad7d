package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"mongo-keeper/internal/models"
)

type entry struct {
	name string
	body string
	mode int64
}

func buildTarGz(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: e.mode}
		if e.name[len(e.name)-1] == '/' {
			hdr.Typeflag = tar.TypeDir
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.body)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func buildZip(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func layout(t *testing.T, archiveName string) models.ResolvedPaths {
	t.Helper()
	dir := t.TempDir()
	return models.ResolvedPaths{
		SourceDir:  dir,
		SourceFile: filepath.Join(dir, archiveName),
		ExtractDir: filepath.Join(dir, "unpacked"),
		ExecFile:   filepath.Join(dir, "unpacked", "bin", "mongod"),
	}
}

func mongoFormula() *models.Formula {
	return &models.Formula{Name: "mongodb", Version: "7.0.14", Exec: "bin/mongod"}
}

func TestEnsureTarGzStripsWrapperDir(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	buildTarGz(t, p.SourceFile, []entry{
		{name: "mongodb-linux-x86_64-7.0.14/", mode: 0755},
		{name: "mongodb-linux-x86_64-7.0.14/bin/", mode: 0755},
		{name: "mongodb-linux-x86_64-7.0.14/bin/mongod", body: "#!mongod", mode: 0755},
		{name: "mongodb-linux-x86_64-7.0.14/README", body: "docs", mode: 0644},
	})

	if err := Ensure(mongoFormula(), p); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p.ExecFile)
	if err != nil {
		t.Fatalf("executable not extracted at stripped path: %v", err)
	}
	if string(data) != "#!mongod" {
		t.Error("executable content mangled")
	}
	info, _ := os.Stat(p.ExecFile)
	if info.Mode().Perm()&0111 == 0 {
		t.Error("executable bit not set")
	}
	if _, err := os.Stat(filepath.Join(p.ExtractDir, "README")); err != nil {
		t.Error("sibling entry not extracted at stripped path")
	}
	// The wrapper dir itself must not reappear below the extraction root.
	if _, err := os.Stat(filepath.Join(p.ExtractDir, "mongodb-linux-x86_64-7.0.14")); !os.IsNotExist(err) {
		t.Error("wrapper directory was not stripped")
	}
}

func TestEnsureZip(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-win32-x64.zip")
	buildZip(t, p.SourceFile, []entry{
		{name: "mongodb-windows-x86_64-7.0.14/bin/mongod", body: "exe"},
	})

	if err := Ensure(mongoFormula(), p); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p.ExecFile); err != nil {
		t.Errorf("executable not extracted from zip: %v", err)
	}
}

func TestEnsureSkipsWhenAlreadyExtracted(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	if err := os.MkdirAll(filepath.Dir(p.ExecFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.ExecFile, []byte("existing"), 0755); err != nil {
		t.Fatal(err)
	}
	// Deliberately corrupt archive: it must never be opened on a cache hit.
	if err := os.WriteFile(p.SourceFile, []byte("not a tgz"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Ensure(mongoFormula(), p); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(p.ExecFile)
	if string(data) != "existing" {
		t.Error("cached extraction was overwritten")
	}
}

func TestEnsureReextractsAfterInterruption(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	buildTarGz(t, p.SourceFile, []entry{
		{name: "wrapper/bin/mongod", body: "bin", mode: 0755},
	})
	// Extraction dir exists but the executable is missing, as after an
	// interrupted extraction.
	if err := os.MkdirAll(p.ExtractDir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Ensure(mongoFormula(), p); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p.ExecFile); err != nil {
		t.Errorf("interrupted extraction not repaired: %v", err)
	}
}

func TestEnsureCorruptArchive(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	if err := os.WriteFile(p.SourceFile, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Ensure(mongoFormula(), p)
	var exErr *models.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error is %T, want *models.ExtractionError", err)
	}
}

func TestEnsureUnrecognizedFormat(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.rar")
	if err := os.WriteFile(p.SourceFile, []byte("rar!"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Ensure(mongoFormula(), p)
	var exErr *models.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error is %T, want *models.ExtractionError", err)
	}
}

func TestEnsureMissingDeclaredExecutable(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	buildTarGz(t, p.SourceFile, []entry{
		{name: "wrapper/other-file", body: "x", mode: 0644},
	})

	err := Ensure(mongoFormula(), p)
	var exErr *models.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("error is %T, want *models.ExtractionError", err)
	}
}

func TestEnsureRejectsEscapingEntries(t *testing.T) {
	p := layout(t, "mongodb-7.0.14-linux-x64.tgz")
	buildTarGz(t, p.SourceFile, []entry{
		{name: "wrapper/../../escape", body: "x", mode: 0644},
	})

	if err := Ensure(mongoFormula(), p); err == nil {
		t.Fatal("expected error for entry escaping extraction root")
	}
	if _, err := os.Stat(filepath.Join(p.SourceDir, "..", "escape")); err == nil {
		t.Error("escaping entry was written outside the extraction root")
	}
}

func TestStripLeading(t *testing.T) {
	cases := []struct {
		name string
		want string
		keep bool
	}{
		{"mongodb-7.0.14/bin/mongod", "bin/mongod", true},
		{"mongodb-7.0.14/", "", false},
		{"mongodb-7.0.14", "", false},
		{"./mongodb-7.0.14/LICENSE", "LICENSE", true},
		{"", "", false},
	}
	for _, c := range cases {
		got, keep, err := stripLeading(c.name)
		if err != nil {
			t.Errorf("stripLeading(%q) unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want || keep != c.keep {
			t.Errorf("stripLeading(%q) = (%q, %v), want (%q, %v)", c.name, got, keep, c.want, c.keep)
		}
	}
	if _, _, err := stripLeading("a/../../b"); err == nil {
		t.Error("expected error for .. traversal")
	}
	if _, _, err := stripLeading("/abs/path"); err == nil {
		t.Error("expected error for absolute entry")
	}
}
