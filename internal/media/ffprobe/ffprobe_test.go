package ffprobe

import "testing"

func TestParseDuration(t *testing.T) {
	payload := []byte(`{
		"format": {
			"filename": "dQw4w9WgXcQ_title.m4a",
			"duration": "212.091000",
			"format_name": "mov,mp4,m4a,3gp,3g2,mj2"
		}
	}`)

	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ms, err := result.DurationMs()
	if err != nil {
		t.Fatalf("DurationMs: %v", err)
	}
	if ms != 212091 {
		t.Errorf("duration = %d ms, want 212091", ms)
	}
}

func TestDurationMsErrors(t *testing.T) {
	tests := []struct {
		name     string
		duration string
	}{
		{"missing", ""},
		{"garbage", "abc"},
		{"negative", "-3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Result{Format: Format{Duration: tc.duration}}
			if _, err := r.DurationMs(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
