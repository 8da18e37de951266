package path

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootPathContainsModule(t *testing.T) {
	root := RootPath()
	ok, err := Exists(filepath.Join(root, "go.mod"))
	if err != nil || !ok {
		t.Fatalf("expected go.mod under %s (err=%v)", root, err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("app: {}"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "file", path: file, want: true},
		{name: "directory", path: dir, want: true},
		{name: "missing", path: filepath.Join(dir, "missing.yaml"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exists(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Exists(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
