package credential

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "default length", length: 8},
		{name: "long", length: 64},
		{name: "zero", length: 0, wantErr: true},
		{name: "negative", length: -1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Generate(tt.length)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for length %d", tt.length)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.length {
				t.Fatalf("expected length %d, got %d", tt.length, len(got))
			}
			for _, r := range got {
				if !strings.ContainsRune(Alphabet, r) {
					t.Fatalf("unexpected symbol %q in %q", r, got)
				}
			}
		})
	}
}

func TestGenerateVaries(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		v, err := Generate(8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[v] = struct{}{}
	}
	if len(seen) < 45 {
		t.Fatalf("expected mostly distinct credentials, got %d unique of 50", len(seen))
	}
}
