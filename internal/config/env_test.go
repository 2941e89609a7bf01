package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefaultAcceptsSeconds(t *testing.T) {
	t.Setenv("DUR_TEST", "45")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != 45*time.Second {
		t.Fatalf("expected 45s from bare seconds, got %s", got)
	}
	t.Setenv("DUR_TEST", "1m30s")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s from duration string, got %s", got)
	}
	t.Setenv("DUR_TEST", "-5")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != time.Second {
		t.Fatalf("expected default on negative seconds, got %s", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "250")
	if got := intEnvOrDefault("INT_TEST", 100); got != 250 {
		t.Fatalf("expected 250, got %d", got)
	}
	t.Setenv("INT_TEST", "abc")
	if got := intEnvOrDefault("INT_TEST", 100); got != 100 {
		t.Fatalf("expected default on invalid value, got %d", got)
	}
}
