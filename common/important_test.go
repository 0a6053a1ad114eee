package common

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	yaml "gopkg.in/yaml.v3"
)

func TestParseImportant(t *testing.T) {
	tests := []struct {
		in   string
		want Important
	}{
		{"", Important{}},
		{"false", Important{}},
		{"true", Important{Enabled: true}},
		{"#app", Important{Enabled: true, Scope: "#app"}},
		{"  .root ", Important{Enabled: true, Scope: ".root"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseImportant(tt.in); got != tt.want {
				t.Errorf("ParseImportant(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestImportantYAML(t *testing.T) {
	var v struct {
		Important Important `yaml:"important"`
	}

	if err := yaml.Unmarshal([]byte("important: true\n"), &v); err != nil {
		t.Fatalf("unmarshal bool: %v", err)
	}
	if !v.Important.Enabled || v.Important.IsScoped() {
		t.Errorf("unexpected value for bool form: %+v", v.Important)
	}

	if err := yaml.Unmarshal([]byte("important: '#app'\n"), &v); err != nil {
		t.Fatalf("unmarshal scope: %v", err)
	}
	if v.Important.Scope != "#app" {
		t.Errorf("expected scope #app, got %+v", v.Important)
	}

	if err := yaml.Unmarshal([]byte("important: [1, 2]\n"), &v); err == nil {
		t.Error("expected error for sequence value")
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "important: '#app'\n" {
		t.Errorf("unexpected marshal output %q", out)
	}
}

func TestParseErrorPolicy(t *testing.T) {
	p, err := ParseErrorPolicy("FAIL")
	if err != nil {
		t.Fatalf("ParseErrorPolicy() error = %v", err)
	}
	if p != ErrorPolicyFail {
		t.Errorf("expected fail, got %v", p)
	}
	if _, err := ParseErrorPolicy("panic"); !errors.Is(err, ErrInvalidErrorPolicy) {
		t.Errorf("expected ErrInvalidErrorPolicy for unknown policy, got %v", err)
	}
	if !ErrorPolicyFail.IsValid() || ErrorPolicy(7).IsValid() {
		t.Error("unexpected IsValid() result")
	}
	if diff := cmp.Diff([]string{"warn", "fail"}, ErrorPolicyNames()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if ErrorPolicyWarn.String() != "warn" {
		t.Errorf("unexpected String() %q", ErrorPolicyWarn.String())
	}
}
