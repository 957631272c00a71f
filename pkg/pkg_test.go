package pkg

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "qjsc"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestEnvPrefix_DerivedFromName(t *testing.T) {
	if EnvPrefix != strings.ToUpper(Name)+"_" {
		t.Errorf("Expected EnvPrefix derived from %q, got %q", Name, EnvPrefix)
	}
}

func TestVersion_Trimmed(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Expected non-empty version")
	}

	if strings.TrimSpace(v) != v {
		t.Errorf("Expected trimmed version, got %q", v)
	}
}
