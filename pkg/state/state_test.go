package state

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/vango-dev/rangeslider/pkg/cell"
)

func quiet() cell.Option {
	return cell.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func TestNewClampsInitial(t *testing.T) {
	s := New(-1, 3, quiet())
	if got := s.LeftHandlePosition.Get(); got != 0 {
		t.Errorf("left = %v, want 0", got)
	}
	if got := s.RightHandlePosition.Get(); got != 1 {
		t.Errorf("right = %v, want 1", got)
	}

	s = New(math.NaN(), 0.4, quiet())
	if got := s.LeftHandlePosition.Get(); got != 0 {
		t.Errorf("NaN left = %v, want 0", got)
	}
}

func TestPositionClamp(t *testing.T) {
	s := New(0.2, 0.8, quiet())
	tests := []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{-0.1, 0},
		{1.5, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{1, 1},
	}
	for _, tt := range tests {
		if err := s.LeftHandlePosition.Set(tt.in); err != nil {
			t.Errorf("Set(%v) error: %v", tt.in, err)
		}
		if got := s.LeftHandlePosition.Get(); got != tt.want {
			t.Errorf("Set(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPositionRejectsNaN(t *testing.T) {
	s := New(0.2, 0.8, quiet())
	err := s.RightHandlePosition.Set(math.NaN())
	if !errors.Is(err, ErrNotAPosition) || !errors.Is(err, cell.ErrRejected) {
		t.Errorf("error = %v, want ErrNotAPosition", err)
	}
	if got := s.RightHandlePosition.Get(); got != 0.8 {
		t.Errorf("right = %v, want unchanged 0.8", got)
	}
}

func TestCellNames(t *testing.T) {
	s := New(0, 1, quiet())
	if s.LeftHandlePosition.Name() != "leftHandlePosition" || s.RightHandlePosition.Name() != "rightHandlePosition" {
		t.Errorf("names = %q, %q", s.LeftHandlePosition.Name(), s.RightHandlePosition.Name())
	}
}
