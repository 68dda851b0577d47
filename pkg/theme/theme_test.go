package theme

import (
	"testing"

	"tableflip.dev/lumina/pkg/task"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: System},
		{in: "light", want: Light},
		{in: " DARK ", want: Dark},
		{in: "system", want: System},
		{in: "sepia", want: System, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSystemFollowsTerminal(t *testing.T) {
	orig := hasDarkBackground
	defer func() { hasDarkBackground = orig }()

	hasDarkBackground = func() bool { return true }
	if !System.IsDark() {
		t.Fatal("system on a dark terminal should resolve dark")
	}
	hasDarkBackground = func() bool { return false }
	if System.IsDark() {
		t.Fatal("system on a light terminal should resolve light")
	}
	if !Dark.IsDark() || Light.IsDark() {
		t.Fatal("explicit modes ignore the terminal")
	}
}

func TestRamp(t *testing.T) {
	got := Ramp("#000000", "#ffffff", 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != "#000000" || got[2] != "#ffffff" {
		t.Fatalf("ramp endpoints = %v", got)
	}
	if got[1] == got[0] || got[1] == got[2] {
		t.Fatalf("midpoint not blended: %v", got)
	}
	if Ramp("nope", "#ffffff", 3) != nil {
		t.Fatal("bad hex should give nil ramp")
	}
	if Ramp("#000000", "#ffffff", 0) != nil {
		t.Fatal("zero steps should give nil ramp")
	}
}

func TestPaletteCoversLevels(t *testing.T) {
	p := For(Dark)
	if !p.Dark {
		t.Fatal("dark palette not dark")
	}
	if len(p.load) != len(task.Levels()) {
		t.Fatalf("load styles = %d, want %d", len(p.load), len(task.Levels()))
	}
	for _, l := range task.Levels() {
		if p.Load(l).Render("x") == "" {
			t.Fatalf("level %s renders empty", l)
		}
	}
}
