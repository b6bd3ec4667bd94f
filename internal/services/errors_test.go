package services

import (
	"errors"
	"testing"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrSegmentation, "segmenting", "write slice", "segment 3", cause)

	if !errors.Is(err, ErrSegmentation) {
		t.Error("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
	want := "segmentation error: segmenting: write slice: segment 3: disk full"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Error("nil marker should default to ErrTransient")
	}
	if err.Error() != "transient failure: service failure" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAssetFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{Wrap(ErrInvalidIdentifier, "resolving", "", "", nil), true},
		{Wrap(ErrIngestion, "resolving", "fetch", "", errors.New("404")), true},
		{Wrap(ErrSegmentation, "segmenting", "", "", nil), true},
		{Wrap(ErrTranscriptionExhausted, "transcribing", "", "", nil), false},
		{errors.New("unrelated"), false},
	}
	for _, tc := range tests {
		if got := AssetFatal(tc.err); got != tc.want {
			t.Errorf("AssetFatal(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
