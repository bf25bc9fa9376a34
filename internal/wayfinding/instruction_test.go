package wayfinding_test

import (
	"testing"

	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

func TestDirectionPhrase(t *testing.T) {
	tests := []struct {
		relative float64
		want     string
	}{
		{0, wayfinding.PhraseAhead},
		{9.99, wayfinding.PhraseAhead},
		{-9.99, wayfinding.PhraseAhead},
		{10, wayfinding.PhraseSlightlyRight},
		{44.9, wayfinding.PhraseSlightlyRight},
		{45, wayfinding.PhraseRight},
		{134.9, wayfinding.PhraseRight},
		{135, wayfinding.PhraseBehind},
		{400, wayfinding.PhraseBehind},
		{-10, wayfinding.PhraseSlightlyLeft},
		{-44.9, wayfinding.PhraseSlightlyLeft},
		{-45, wayfinding.PhraseLeft},
		{-134.9, wayfinding.PhraseLeft},
		{-135, ""},
		{-500, ""},
	}

	for _, tc := range tests {
		if got := wayfinding.DirectionPhrase(tc.relative); got != tc.want {
			t.Errorf("DirectionPhrase(%v) = %q, want %q", tc.relative, got, tc.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{150, "150m"},
		{150.4, "150m"},
		{150.5, "151m"},
		{1000, "1000m"},
		{1000.01, "1.0km"},
		{1500, "1.5km"},
		{12345, "12.3km"},
		{1250, "1.3km"},
		{3250, "3.3km"},
		{1050, "1.1km"},
		{1150, "1.1km"}, // 1.15 is stored just below the tie
	}

	for _, tc := range tests {
		if got := wayfinding.FormatDistance(tc.meters); got != tc.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}

func TestRelativeDirection(t *testing.T) {
	tests := []struct {
		direction, heading, want float64
	}{
		{45, 0, 45},
		{0, 180, 180},
		{180, 0, 180},
		{270, 0, -90},
		{0, 350, 10},
		{350, 10, -20},
		{-45, 0, -45},
		{725, 0, 5},
	}

	for _, tc := range tests {
		got := wayfinding.RelativeDirection(tc.direction, tc.heading)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("RelativeDirection(%v, %v) = %v, want %v", tc.direction, tc.heading, got, tc.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("RelativeDirection(%v, %v) = %v, outside (-180, 180]", tc.direction, tc.heading, got)
		}
	}
}

func TestInstruction(t *testing.T) {
	gate := wayfinding.Marker{ID: "1", Name: "Gate 42", Distance: 150, Direction: 45, Category: wayfinding.CategoryGate}

	tests := []struct {
		name    string
		marker  wayfinding.Marker
		heading float64
		want    string
	}{
		{"to the right", gate, 0, "Gate 42 is 150m to your right"},
		{"kilometers", wayfinding.Marker{Name: "Terminal 4", Distance: 1500}, 0, "Terminal 4 is 1.5km straight ahead"},
		{"slightly left", gate, 60, "Gate 42 is 150m slightly to your left"},
		{"left", gate, 135, "Gate 42 is 150m to your left"},
		{"wraps past north", wayfinding.Marker{Name: "Restroom", Distance: 50, Direction: 5}, 355, "Restroom is 50m slightly to your right"},
		{"deep left reads behind", wayfinding.Marker{Name: "Lounge", Distance: 200, Direction: 30}, 180, "Lounge is 200m behind you"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wayfinding.Instruction(tc.marker, tc.heading); got != tc.want {
				t.Errorf("Instruction = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReferenceInstruction(t *testing.T) {
	gate := wayfinding.Marker{Name: "Gate 42", Distance: 150, Direction: 45}
	if got, want := wayfinding.ReferenceInstruction(gate, 0), "Gate 42 is 150m to your right"; got != want {
		t.Errorf("ReferenceInstruction = %q, want %q", got, want)
	}

	// 5 - 355 = -350 is outside every threshold
	restroom := wayfinding.Marker{Name: "Restroom", Distance: 50, Direction: 5}
	if got, want := wayfinding.ReferenceInstruction(restroom, 355), "Restroom is 50m "; got != want {
		t.Errorf("ReferenceInstruction = %q, want %q", got, want)
	}
}

func TestInstructionAlwaysHasPhrase(t *testing.T) {
	m := wayfinding.Marker{Name: "Gate 7", Distance: 10}
	for direction := -720.0; direction <= 720; direction += 7.5 {
		for heading := 0.0; heading < 360; heading += 15 {
			m.Direction = direction
			g := wayfinding.Guide(m, heading)
			if g.Phrase == "" {
				t.Fatalf("no phrase for direction %v heading %v", direction, heading)
			}
		}
	}
}

func TestGuide(t *testing.T) {
	m := wayfinding.Marker{ID: "1", Name: "Gate 42", Distance: 150, Direction: 45}
	g := wayfinding.Guide(m, 0)

	if g.MarkerID != "1" {
		t.Errorf("MarkerID = %q", g.MarkerID)
	}
	if g.Relative != 45 {
		t.Errorf("Relative = %v, want 45", g.Relative)
	}
	if g.DistanceText != "150m" {
		t.Errorf("DistanceText = %q, want 150m", g.DistanceText)
	}
	if g.Summary != "Walk 150m in direction 45°." {
		t.Errorf("Summary = %q", g.Summary)
	}
}

func TestDisplayFloor(t *testing.T) {
	if got := (wayfinding.Marker{}).DisplayFloor(); got != 1 {
		t.Errorf("DisplayFloor without floor = %d, want 1", got)
	}
	if got := (wayfinding.Marker{Floor: wayfinding.IntPtr(0)}).DisplayFloor(); got != 0 {
		t.Errorf("DisplayFloor(0) = %d, want 0", got)
	}
}
