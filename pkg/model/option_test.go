package model

import (
	"errors"
	"testing"
)

func TestOptionRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, o := range Options() {
		name := o.String()
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true

		got, err := ParseOption(name)
		if err != nil {
			t.Errorf("ParseOption(%q) error: %v", name, err)
			continue
		}
		if got != o {
			t.Errorf("ParseOption(%q) = %v, want %v", name, got, o)
		}
		if o.Kind() == KindInvalid {
			t.Errorf("%s has invalid kind", name)
		}
	}
	if len(seen) != 12 {
		t.Errorf("len(Options()) = %d, want 12", len(seen))
	}
}

func TestParseOptionUnknown(t *testing.T) {
	_, err := ParseOption("colour")
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("error = %v, want ErrUnknownOption", err)
	}
}

func TestOptionKind(t *testing.T) {
	tests := []struct {
		opt  Option
		want Kind
	}{
		{OptIsRange, KindBool},
		{OptLimitsDisplayed, KindBool},
		{OptStep, KindNumber},
		{OptRightHandleValue, KindNumber},
		{OptPointsNumber, KindInt},
		{OptDefaultValues, KindLabels},
		{Option(0), KindInvalid},
	}
	for _, tt := range tests {
		if got := tt.opt.Kind(); got != tt.want {
			t.Errorf("%v.Kind() = %v, want %v", tt.opt, got, tt.want)
		}
	}
	if Option(99).String() != "Option(99)" {
		t.Errorf("String() = %q", Option(99).String())
	}
}
