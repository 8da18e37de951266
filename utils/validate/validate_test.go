package validate

import (
	"strings"
	"testing"
)

func TestRedactJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "nested employees",
			in:       `{"employees":[{"email":"employee1@co.com","temporaryPassword":"Ab3dEf9h"}],"message":"ok"}`,
			contains: []string{"employee1@co.com", "[REDACTED]", `"message":"ok"`},
			absent:   []string{"Ab3dEf9h"},
		},
		{
			name:     "reset password",
			in:       `{"newPassword":"Zz9Yy8Xx"}`,
			contains: []string{"[REDACTED]"},
			absent:   []string{"Zz9Yy8Xx"},
		},
		{
			name:     "not json",
			in:       "plain text",
			contains: []string{"plain text"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RedactJSON([]byte(tt.in))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Fatalf("expected %q in %s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Fatalf("did not expect %q in %s", bad, got)
				}
			}
		})
	}
}

func TestRedactDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := map[string]any{"temporaryPassword": "secret"}
	_ = Redact(in)
	if in["temporaryPassword"] != "secret" {
		t.Fatalf("input was mutated: %v", in)
	}
}
