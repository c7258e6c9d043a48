package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	d, err := fs.Open(dir)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", dir, err)
	}

	absDir, _ := filepath.Abs(dir)
	if d.Path() != absDir {
		t.Errorf("directory.Path() = %q, want %q", d.Path(), absDir)
	}
}

func TestOSFileSystem_Open_Errors(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "ironjacamar.xml")
	writeFile(t, filePath, "<ironjacamar/>")

	fs := NewOSFileSystem()
	if _, err := fs.Open(filepath.Join(dir, "nonexistent")); err == nil {
		t.Error("Open(nonexistent) should return error")
	}
	if _, err := fs.Open(filePath); err == nil {
		t.Error("Open(file) should return error")
	}
}

func TestOSFileSystem_ReadFileAndStat(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "eis-ra.xml")
	expected := "<resource-adapters/>"
	writeFile(t, filePath, expected)

	fs := NewOSFileSystem()
	data, err := fs.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != expected {
		t.Errorf("ReadFile() = %q, want %q", string(data), expected)
	}

	info, err := fs.Stat(filePath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.IsDir() || info.Name() != "eis-ra.xml" {
		t.Errorf("Stat() = %s dir=%v", info.Name(), info.IsDir())
	}

	if _, err := fs.ReadFile(filepath.Join(dir, "nope.xml")); err == nil {
		t.Error("ReadFile(nonexistent) should return error")
	}
}

func TestOSFileSystem_Walk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build.xml"), "<project/>")
	writeFile(t, filepath.Join(dir, "META-INF", "ironjacamar.xml"), "<ironjacamar/>")
	writeFile(t, filepath.Join(dir, ".git", "config.xml"), "<x/>")

	d, err := NewOSFileSystem().Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	files := walkFiles(t, d, ".git")
	want := []string{"META-INF/ironjacamar.xml", "build.xml"}
	if len(files) != len(want) {
		t.Fatalf("Walk found %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestOSFile_ReadContent(t *testing.T) {
	dir := t.TempDir()
	expected := "<ironjacamar><transaction-support>NoTransaction</transaction-support></ironjacamar>"
	writeFile(t, filepath.Join(dir, "ironjacamar.xml"), expected)

	d, err := NewOSFileSystem().Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var got string
	err = d.Walk(func(f File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if f.RelativePath() == "ironjacamar.xml" {
			data, err := f.ReadContent()
			if err != nil {
				return err
			}
			got = string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got != expected {
		t.Errorf("ReadContent() = %q, want %q", got, expected)
	}
}
