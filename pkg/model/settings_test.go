package model

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLabelsUnmarshalJSON(t *testing.T) {
	var l Labels
	if err := json.Unmarshal([]byte(`["xs", 2, 3.5, "xl"]`), &l); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	want := []string{"xs", "2", "3.5", "xl"}
	if len(l) != len(want) {
		t.Fatalf("len = %d, want %d", len(l), len(want))
	}
	for i := range want {
		if l[i] != want[i] {
			t.Errorf("l[%d] = %q, want %q", i, l[i], want[i])
		}
	}

	if err := json.Unmarshal([]byte(`["a", true]`), &l); err == nil {
		t.Error("expected error for boolean element")
	}
	if err := json.Unmarshal([]byte(`"a"`), &l); err == nil {
		t.Error("expected error for non-array")
	}
}

func TestLabelsUnmarshalYAML(t *testing.T) {
	var doc struct {
		Labels Labels `yaml:"labels"`
	}
	if err := yaml.Unmarshal([]byte("labels: [small, 10, large]\n"), &doc); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if strings.Join(doc.Labels, ",") != "small,10,large" {
		t.Errorf("labels = %v", doc.Labels)
	}

	err := yaml.Unmarshal([]byte("labels: {a: 1}\n"), &doc)
	if err == nil || !strings.Contains(err.Error(), "want a sequence") {
		t.Errorf("error = %v, want sequence error", err)
	}
}

func TestOverridesApply(t *testing.T) {
	base := Defaults()
	o := Overrides{
		IsRange:       Bool(true),
		Step:          Number(5),
		PointsNumber:  Int(11),
		DefaultValues: Labels{"a", "b"},
	}
	s := o.Apply(base)

	if !s.IsRange || s.Step != 5 || s.PointsNumber != 11 {
		t.Errorf("Apply = %+v", s)
	}
	if s.MaxValue != base.MaxValue || s.LeftHandleValue != base.LeftHandleValue {
		t.Errorf("unset fields changed: %+v", s)
	}
	if strings.Join(s.DefaultValues, ",") != "a,b" {
		t.Errorf("DefaultValues = %v", s.DefaultValues)
	}

	o.DefaultValues[0] = "mutated"
	if s.DefaultValues[0] != "a" {
		t.Error("Apply shares the override label slice")
	}
	s.DefaultValues[1] = "mutated"
	if base.DefaultValues[1] != "second" {
		t.Error("Apply shares the base label slice")
	}
}

func TestOverridesJSON(t *testing.T) {
	var o Overrides
	if err := json.Unmarshal([]byte(`{"isRange": true, "maxValue": 50, "defaultValues": [1, 2]}`), &o); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if o.IsZero() {
		t.Fatal("IsZero() = true")
	}
	if o.IsRange == nil || !*o.IsRange {
		t.Error("isRange not decoded")
	}
	if o.MaxValue == nil || *o.MaxValue != 50 {
		t.Error("maxValue not decoded")
	}
	if o.MinValue != nil {
		t.Error("minValue should stay nil")
	}
	if strings.Join(o.DefaultValues, ",") != "1,2" {
		t.Errorf("defaultValues = %v", o.DefaultValues)
	}

	if !(Overrides{}).IsZero() {
		t.Error("empty Overrides IsZero() = false")
	}
}

func TestSettingsPosition(t *testing.T) {
	s := Defaults()
	s.MinValue, s.MaxValue = 20, 120

	tests := []struct {
		value float64
		want  float64
	}{
		{20, 0},
		{70, 0.5},
		{120, 1},
		{0, 0},
		{500, 1},
	}
	for _, tt := range tests {
		if got := s.Position(tt.value); got != tt.want {
			t.Errorf("Position(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}

	s.MaxValue = 20
	if got := s.Position(20); got != 0 {
		t.Errorf("Position with empty span = %v, want 0", got)
	}

	s.HasDefaultValues = true
	s.DefaultValues = Labels{"a", "b", "c", "d", "e"}
	if got := s.Position(3); got != 0.75 {
		t.Errorf("label Position(3) = %v, want 0.75", got)
	}
	s.DefaultValues = Labels{"only"}
	if got := s.Position(0); got != 0 {
		t.Errorf("single label Position = %v, want 0", got)
	}
}

func TestSettingsValueAt(t *testing.T) {
	s := Defaults()
	s.MinValue, s.MaxValue = -50, 50
	if got := s.ValueAt(0.25); got != -25 {
		t.Errorf("ValueAt(0.25) = %v, want -25", got)
	}
	if got := s.ValueAt(2); got != 50 {
		t.Errorf("ValueAt(2) = %v, want 50", got)
	}

	s.HasDefaultValues = true
	s.DefaultValues = Labels{"a", "b", "c"}
	if got := s.ValueAt(0.7); got != 1 {
		t.Errorf("label ValueAt(0.7) = %v, want 1", got)
	}
	if got := s.ValueAt(0.8); got != 2 {
		t.Errorf("label ValueAt(0.8) = %v, want 2", got)
	}
}

func TestSettingsFormat(t *testing.T) {
	s := Defaults()
	if got := s.Format(42); got != "42" {
		t.Errorf("Format(42) = %q", got)
	}
	if got := s.Format(2.5); got != "2.5" {
		t.Errorf("Format(2.5) = %q", got)
	}

	s.HasDefaultValues = true
	if got := s.Format(1); got != "second" {
		t.Errorf("label Format(1) = %q, want second", got)
	}
	if got := s.Format(9); got != "" {
		t.Errorf("label Format(9) = %q, want empty", got)
	}
}
