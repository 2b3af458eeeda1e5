package logger

import "testing"

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"trace":   LevelTrace,
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"":        LevelInfo,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"fatal":   LevelFatal,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseLevelUnknown(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetGetLevel(t *testing.T) {
	old := GetLevel()
	defer SetLevel(old)

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Fatalf("GetLevel = %v", GetLevel())
	}
}
