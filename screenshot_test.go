package alder

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-burst", "after-burst"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	ed := NewEditor(Config{})
	ed.Screenshot("a")
	ed.Screenshot("b")
	ed.Screenshot("c")
	if len(ed.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(ed.screenshotQueue))
	}
	if ed.screenshotQueue[0] != "a" || ed.screenshotQueue[1] != "b" || ed.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", ed.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	ed := NewEditor(Config{})
	if ed.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", ed.ScreenshotDir, "screenshots")
	}
}
