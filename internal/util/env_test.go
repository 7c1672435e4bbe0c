package util

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("ONTOCHAT_TEST_STR", "value")
	if got := GetEnv("ONTOCHAT_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("ONTOCHAT_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q, want fallback", got)
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("ONTOCHAT_TEST_INT", " 42 ")
	if got := ParseIntEnv("ONTOCHAT_TEST_INT", 7); got != 42 {
		t.Errorf("ParseIntEnv = %d, want 42", got)
	}
	t.Setenv("ONTOCHAT_TEST_INT", "not-a-number")
	if got := ParseIntEnv("ONTOCHAT_TEST_INT", 7); got != 7 {
		t.Errorf("ParseIntEnv invalid = %d, want default 7", got)
	}
	if got := ParseIntEnv("ONTOCHAT_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("ParseIntEnv unset = %d, want default 7", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	cases := map[string]bool{
		"true": true, "1": true, "YES": true, "on": true,
		"false": false, "0": false, "No": false, "off": false,
	}
	for val, want := range cases {
		t.Setenv("ONTOCHAT_TEST_BOOL", val)
		if got := ParseBoolEnv("ONTOCHAT_TEST_BOOL", !want); got != want {
			t.Errorf("ParseBoolEnv(%q) = %v, want %v", val, got, want)
		}
	}
	t.Setenv("ONTOCHAT_TEST_BOOL", "maybe")
	if got := ParseBoolEnv("ONTOCHAT_TEST_BOOL", true); got != true {
		t.Errorf("ParseBoolEnv invalid = %v, want default", got)
	}
}
