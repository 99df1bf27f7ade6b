package easel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/tanema/gween/ease"
)

// BrushSetting identifies one numeric brush parameter. The set mirrors the
// settings the engine actually consumes; brush files may carry more, and
// unrecognized entries are ignored on load.
type BrushSetting uint8

const (
	// SettingRadiusLogarithmic is the natural log of the dab radius in pixels.
	SettingRadiusLogarithmic BrushSetting = iota
	// SettingOpaque is the dab opacity in [0, 1].
	SettingOpaque
	// SettingHardness is the fraction of the dab radius at full strength;
	// the rim beyond it fades to zero.
	SettingHardness
	// SettingColorH, SettingColorS, SettingColorV are the brush color in HSV,
	// each in [0, 1].
	SettingColorH
	SettingColorS
	SettingColorV
	// SettingDabsPerActualRadius controls dab spacing along a stroke.
	SettingDabsPerActualRadius
	// SettingPressureGain scales how strongly pen pressure shrinks light dabs.
	SettingPressureGain

	settingCount
)

// settingNames maps settings to their brush-file keys (MyPaint .myb names).
var settingNames = [settingCount]string{
	SettingRadiusLogarithmic:   "radius_logarithmic",
	SettingOpaque:              "opaque",
	SettingHardness:            "hardness",
	SettingColorH:              "color_h",
	SettingColorS:              "color_s",
	SettingColorV:              "color_v",
	SettingDabsPerActualRadius: "dabs_per_actual_radius",
	SettingPressureGain:        "pressure_gain_log",
}

// String returns the setting's brush-file key.
func (s BrushSetting) String() string {
	if s < settingCount {
		return settingNames[s]
	}
	return fmt.Sprintf("BrushSetting(%d)", uint8(s))
}

var settingByName = func() map[string]BrushSetting {
	m := make(map[string]BrushSetting, settingCount)
	for i, name := range settingNames {
		m[name] = BrushSetting(i)
	}
	return m
}()

var settingDefaults = [settingCount]float32{
	SettingRadiusLogarithmic:   2.0, // e² ≈ 7.4px
	SettingOpaque:              1.0,
	SettingHardness:            0.8,
	SettingColorH:              0.0,
	SettingColorS:              0.0,
	SettingColorV:              0.0,
	SettingDabsPerActualRadius: 2.0,
	SettingPressureGain:        0.0,
}

// Brush holds the active values for every brush setting.
type Brush struct {
	values [settingCount]float32
}

func newBrush() *Brush {
	b := &Brush{}
	b.reset()
	return b
}

func (b *Brush) reset() {
	b.values = settingDefaults
}

func (b *Brush) value(s BrushSetting) float32 {
	return b.values[s]
}

func (b *Brush) setValue(s BrushSetting, v float32) {
	b.values[s] = v
}

// radius returns the dab radius in pixels.
func (b *Brush) radius() float32 {
	return float32(math.Exp(float64(b.values[SettingRadiusLogarithmic])))
}

// brushFile is the JSON shape of a brush definition:
//
//	{"version": 3, "settings": {"radius_logarithmic": {"base_value": 2.0}, ...}}
//
// Per-input dynamics under each setting are not modeled; only base_value is
// read.
type brushFile struct {
	Version  int `json:"version"`
	Settings map[string]struct {
		BaseValue float64 `json:"base_value"`
	} `json:"settings"`
}

// load replaces the brush's values with those from a brush definition blob.
// A trailing NUL terminator (appended by callers before hand-off) is
// stripped. Settings the engine does not consume are skipped. On a parse
// error the current values are left untouched.
func (b *Brush) load(data []byte) error {
	data = bytes.TrimRight(data, "\x00")
	var def brushFile
	if err := json.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("easel: parse brush: %w", err)
	}
	b.reset()
	for name, s := range def.Settings {
		if id, ok := settingByName[name]; ok {
			b.values[id] = float32(s.BaseValue)
		}
	}
	return nil
}

// setColor stores c as the brush's HSV color settings.
func (b *Brush) setColor(c color.Color) {
	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		b.values[SettingColorH] = 0
		b.values[SettingColorS] = 0
		b.values[SettingColorV] = 0
		return
	}
	// un-premultiply
	r := float64(r16) / float64(a16)
	g := float64(g16) / float64(a16)
	bb := float64(b16) / float64(a16)
	h, s, v := rgbToHSV(r, g, bb)
	b.values[SettingColorH] = float32(h)
	b.values[SettingColorS] = float32(s)
	b.values[SettingColorV] = float32(v)
}

// rgb returns the brush color as RGB components in [0, 1].
func (b *Brush) rgb() (r, g, bl float32) {
	r64, g64, b64 := hsvToRGB(
		float64(b.values[SettingColorH]),
		float64(b.values[SettingColorS]),
		float64(b.values[SettingColorV]),
	)
	return float32(r64), float32(g64), float32(b64)
}

// dabFalloff returns the dab's alpha contribution at normalized distance
// t = dist/radius from the dab center. Inside the hardness core the dab is
// solid; the rim eases smoothly down to zero.
func dabFalloff(t, hardness float32) float32 {
	if t >= 1 {
		return 0
	}
	if hardness >= 1 || t <= hardness {
		return 1
	}
	if hardness < 0 {
		hardness = 0
	}
	return 1 - ease.InOutQuad((t-hardness)/(1-hardness), 0, 1, 1)
}

// rgbToHSV converts RGB in [0, 1] to HSV in [0, 1].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max
	d := max - min
	if max > 0 {
		s = d / max
	}
	if d == 0 {
		return 0, s, v
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, v
}

// hsvToRGB converts HSV in [0, 1] to RGB in [0, 1].
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}
	h = math.Mod(h, 1) * 6
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
