package core

import "testing"

func TestFrameMetrics_FPS(t *testing.T) {
	m := NewFrameMetrics()

	// Frames of 31.25ms cross the one second mark on the 33rd frame.
	samples := 0
	for i := 0; i < 40; i++ {
		if m.Update(0.03125) {
			samples++
			if got := m.FPS(); got != 33 {
				t.Errorf("FPS() = %v, want 33", got)
			}
		}
	}
	if samples != 1 {
		t.Fatalf("got %d FPS samples, want 1", samples)
	}
}

func TestFrameMetrics_FrameTime(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT)-1; i++ {
		m.Update(0.010)
	}
	if got := m.FrameTime(); got != 0 {
		t.Fatalf("FrameTime() before a full window = %v, want 0", got)
	}
	m.Update(0.010)
	if got := m.FrameTime(); got < 9.999 || got > 10.001 {
		t.Errorf("FrameTime() = %v, want 10ms", got)
	}

	// The average is recomputed per window, not accumulated.
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.020)
	}
	if got := m.FrameTime(); got < 19.999 || got > 20.001 {
		t.Errorf("FrameTime() second window = %v, want 20ms", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{" INFO ", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}
	for _, c := range tests {
		got, err := ParseLogLevel(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
