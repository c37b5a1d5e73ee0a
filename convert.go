package remat

import (
	"fmt"
	"log/slog"
	"sync"
)

// inchToMeter converts host displacement units (inches) to renderer units (meters).
const inchToMeter = 0.0254

// bumpStrength is the fixed bump strength. The value comes from tests on skin materials.
const bumpStrength = 0.5

// Converter converts host materials. Each conversion works on its own
// record; the converter only remembers which malformed references it has
// already reported, so it is safe for concurrent use.
type Converter struct {
	opt  ConvertOptions
	mu   sync.Mutex
	seen map[string]struct{} // Reported (material, input) pairs
}

// NewConverter creates a Converter.
func NewConverter(opt *ConvertOptions) *Converter {
	return &Converter{opt: opt.normalize(), seen: make(map[string]struct{})}
}

// Convert converts a host material with a one-off Converter.
func Convert(src SourceMaterial, opt *ConvertOptions) (*Material, error) {
	return NewConverter(opt).Convert(src)
}

// Convert translates the shader tree of src into a Material.
//
// The returned Material is never nil. Channels that fail are logged and keep
// their defaults; the error only reports failures that left the whole
// material untranslated, such as a missing root node.
func (c *Converter) Convert(src SourceMaterial) (*Material, error) {
	m := NewMaterial("")

	var (
		root   Node
		inputs []Input
	)
	err := guard(func() error {
		m.Name = src.Name()
		root = src.RootNode()
		if root == nil {
			return ErrNoRootNode
		}
		inputs = root.Inputs()
		return nil
	})
	if err != nil {
		c.opt.Logger.Warn("material not converted",
			slog.String("material", m.Name),
			slog.Any("err", err))
		return m, fmt.Errorf("convert %q: %w", m.Name, err)
	}

	a := &assembler{conv: c, tr: newTranslator(c, m), root: root, mat: m}
	for _, in := range inputs {
		var name string
		err := guard(func() error {
			name = in.InternalName()
			return a.channel(name, in)
		})
		if err != nil {
			c.opt.Logger.Warn("channel not converted",
				slog.String("material", m.Name),
				slog.String("channel", name),
				slog.Any("err", err))
		}
	}

	return m, nil
}

// reportOnce logs a malformed reference the first time it is seen for a material.
func (c *Converter) reportOnce(material, object string, err error) {
	key := material + "\x00" + object
	c.mu.Lock()
	_, dup := c.seen[key]
	if !dup {
		c.seen[key] = struct{}{}
	}
	c.mu.Unlock()
	if dup {
		return
	}

	c.opt.Logger.Warn("malformed shader tree reference",
		slog.String("material", material),
		slog.String("ref", object),
		slog.Any("err", err))
}

// guard runs fn and turns a host panic into ErrHostFailure.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHostFailure, r)
		}
	}()

	return fn()
}

// assembler folds the root node channels of one material into its record.
type assembler struct {
	conv *Converter
	tr   *translator
	root Node
	mat  *Material
}

// resolve translates the subgraph attached to a channel.
func (a *assembler) resolve(channel string, in Input) Ref {
	up := in.Upstream()
	if up == nil {
		return NoRef
	}

	ref := a.tr.translate(up)
	if !ref.Valid() {
		a.conv.opt.Logger.Debug("no texture for channel",
			slog.String("material", a.mat.Name),
			slog.String("channel", channel))
	}
	return ref
}

// channel folds one root channel into the record. Unknown channels are ignored.
func (a *assembler) channel(name string, in Input) error {
	m := a.mat
	switch name {
	// Lights label their color "Color".
	case "Diffuse_Color", "Color":
		m.Diffuse.Color = in.Value().AsColor()
		m.Diffuse.Map = a.resolve(name, in)

	case "Diffuse_Value":
		m.Diffuse.Strength = in.Value().Float()
		m.Diffuse.StrengthMap = a.resolve(name, in)

	case "AlternateDiffuse":
		m.Diffuse2.Color = in.Value().AsColor()
		m.Diffuse2.Map = a.resolve(name, in)

	case "Highlight_Color":
		a.highlightColor(in)

	case "Highlight_Value":
		a.highlightValue(in)

	case "AlternateSpecular":
		// The host leaves the color undefined while nothing is connected.
		if in.Upstream() == nil {
			return nil
		}
		m.Specular2.Color = in.Value().AsColor()
		m.Specular2.Map = a.resolve(name, in)

	case "Transparency_Max":
		a.transparency(in)

	case "Translucence_Color":
		m.Translucence.Color = in.Value().AsColor()
		m.Translucence.Map = a.resolve(name, in)

	case "Translucence_Value":
		m.Translucence.Strength = in.Value().Float()

	case "Bump":
		m.Bump.Strength = bumpStrength
		m.Bump.Positive, m.Bump.Negative = unitExtents(in.Value().Float())
		m.Bump.Map = a.resolve(name, in)

	case "Displacement":
		m.Displacement.Positive, m.Displacement.Negative = unitExtents(in.Value().Float())
		if ref := a.resolve(name, in); ref.Valid() {
			m.Displacement.Map = ref
			m.Displacement.Strength = 1
		}

	case "Ambient_Value":
		m.LightGain = in.Value().Float()

	case "Ambient_Color":
		// A non-black ambient color turns the surface into an emitter
		// without a built-in alpha. Black leaves the slot untouched.
		c := in.Value().AsColor()
		if c.IsBlack() {
			return nil
		}
		m.HasBuiltInAlpha = false
		m.Ambient.Color = c
		m.Ambient.Map = a.resolve(name, in)

	case "Intensity":
		v := in.Value().Float()
		m.Intensity = &v

	case "AngleEnd":
		v := in.Value().Float()
		m.Angle = &v
	}

	return nil
}

// highlightColor reads the specular color and map. Both are skipped when the
// specular value is zero, leaving whatever a sink node wrote.
func (a *assembler) highlightColor(in Input) {
	gainInput, ok := a.root.Input("Highlight_Value")
	if !ok || gainInput == nil {
		a.conv.reportOnce(a.mat.Name, a.root.InternalName()+".Highlight_Value", ErrMissingInput)
		return
	}
	if gainInput.Value().Float() == 0 {
		return
	}
	a.mat.Specular.Color = in.Value().AsColor()
	if ref := a.resolve("Highlight_Color", in); ref.Valid() {
		a.mat.Specular.Map = ref
	}
}

// highlightValue folds the specular strength. With a map attached the
// strength becomes a gray specular color; without one it sets roughness.
func (a *assembler) highlightValue(in Input) {
	strength := in.Value().Float()
	if in.Upstream() != nil {
		a.mat.Specular.Map = a.resolve("Highlight_Value", in)
		a.mat.Specular.Color = Gray(strength)
		return
	}

	a.mat.URoughness = 1 - strength
	a.mat.VRoughness = 1 - strength
}

// transparency folds the host transparency into alpha. The host reports
// transparency, so alpha is its complement, except when a map is attached:
// then the value is the map strength and passes through unchanged.
func (a *assembler) transparency(in Input) {
	v := in.Value().Float()
	if in.Upstream() == nil {
		a.mat.Alpha.Strength = 1 - v
		return
	}

	a.mat.Alpha.Strength = v
	a.mat.Alpha.Map = a.resolve("Transparency_Max", in)
}

// unitExtents converts a host height in inches into symmetric positive and
// negative extents in meters.
func unitExtents(inches float64) (pos, neg float64) {
	v := inches * inchToMeter
	return v / 2, -v / 2
}
