package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "reactforge"},
		{"HomeDir", HomeDir(), ".reactforge"},
		{"EnvPrefix", EnvPrefix(), "REACTFORGE"},
		{"EnvVar", EnvVar("home"), "REACTFORGE_HOME"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if Description() == "" {
		t.Error("Description() is empty")
	}
}
