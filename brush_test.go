package easel

import (
	"image/color"
	"math"
	"testing"
)

func TestBrushDefaults(t *testing.T) {
	b := newBrush()
	if got := b.value(SettingOpaque); got != 1 {
		t.Errorf("opaque = %v, want 1", got)
	}
	if got := b.value(SettingRadiusLogarithmic); got != 2 {
		t.Errorf("radius_logarithmic = %v, want 2", got)
	}
	wantRadius := float32(math.Exp(2))
	if got := b.radius(); math.Abs(float64(got-wantRadius)) > 1e-3 {
		t.Errorf("radius = %v, want %v", got, wantRadius)
	}
}

func TestBrushLoad(t *testing.T) {
	b := newBrush()
	data := []byte(`{
		"version": 3,
		"settings": {
			"radius_logarithmic": {"base_value": 1.2},
			"opaque": {"base_value": 0.4},
			"anti_aliasing": {"base_value": 1.0}
		}
	}`)
	if err := b.load(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.value(SettingRadiusLogarithmic); got != 1.2 {
		t.Errorf("radius_logarithmic = %v, want 1.2", got)
	}
	if got := b.value(SettingOpaque); got != 0.4 {
		t.Errorf("opaque = %v, want 0.4", got)
	}
	// Settings absent from the file return to their defaults.
	if got := b.value(SettingHardness); got != settingDefaults[SettingHardness] {
		t.Errorf("hardness = %v, want default %v", got, settingDefaults[SettingHardness])
	}
}

func TestBrushLoadTrimsTrailingNUL(t *testing.T) {
	b := newBrush()
	data := append([]byte(`{"version": 3, "settings": {"opaque": {"base_value": 0.5}}}`), 0)
	if err := b.load(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.value(SettingOpaque); got != 0.5 {
		t.Errorf("opaque = %v, want 0.5", got)
	}
}

func TestBrushLoadInvalidKeepsValues(t *testing.T) {
	b := newBrush()
	b.setValue(SettingOpaque, 0.7)
	if err := b.load([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if got := b.value(SettingOpaque); got != 0.7 {
		t.Errorf("opaque = %v after failed load, want 0.7", got)
	}
}

func TestSettingString(t *testing.T) {
	if got := SettingRadiusLogarithmic.String(); got != "radius_logarithmic" {
		t.Errorf("String = %q, want %q", got, "radius_logarithmic")
	}
	if got := BrushSetting(200).String(); got != "BrushSetting(200)" {
		t.Errorf("String = %q, want %q", got, "BrushSetting(200)")
	}
}

func TestSetColorRoundTrip(t *testing.T) {
	b := newBrush()
	b.setColor(color.RGBA{R: 255, G: 128, B: 0, A: 255})
	r, g, bl := b.rgb()
	if math.Abs(float64(r)-1) > 0.01 || math.Abs(float64(g)-0.5) > 0.01 || math.Abs(float64(bl)) > 0.01 {
		t.Errorf("rgb = (%v, %v, %v), want about (1, 0.5, 0)", r, g, bl)
	}
}

func TestSetColorGray(t *testing.T) {
	b := newBrush()
	b.setColor(color.Gray{Y: 128})
	if got := b.value(SettingColorS); got != 0 {
		t.Errorf("saturation = %v for gray, want 0", got)
	}
	r, g, bl := b.rgb()
	if r != g || g != bl {
		t.Errorf("rgb = (%v, %v, %v), want equal components", r, g, bl)
	}
}

// --- Dab falloff ---

func TestDabFalloffCoreAndEdge(t *testing.T) {
	const hardness = 0.6
	if got := dabFalloff(0, hardness); got != 1 {
		t.Errorf("falloff at center = %v, want 1", got)
	}
	if got := dabFalloff(hardness, hardness); got != 1 {
		t.Errorf("falloff at core edge = %v, want 1", got)
	}
	if got := dabFalloff(1, hardness); got != 0 {
		t.Errorf("falloff at radius = %v, want 0", got)
	}
	if got := dabFalloff(1.5, hardness); got != 0 {
		t.Errorf("falloff beyond radius = %v, want 0", got)
	}
}

func TestDabFalloffMonotonic(t *testing.T) {
	const hardness = 0.3
	prev := float32(2)
	for i := 0; i <= 20; i++ {
		tt := float32(i) / 20
		v := dabFalloff(tt, hardness)
		if v > prev {
			t.Fatalf("falloff not monotonic at t=%v: %v > %v", tt, v, prev)
		}
		prev = v
	}
}

func TestDabFalloffFullHardness(t *testing.T) {
	// A maximally hard brush is solid right up to the radius.
	if got := dabFalloff(0.99, 1); got != 1 {
		t.Errorf("falloff = %v, want 1", got)
	}
	if got := dabFalloff(1, 1); got != 0 {
		t.Errorf("falloff = %v, want 0", got)
	}
}
