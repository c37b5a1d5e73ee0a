package remat

import (
	"fmt"
	"log/slog"
	"slices"
)

// Ref is a node cache key. NoRef means the node produced no output.
type Ref string

// NoRef is the empty reference.
const NoRef Ref = ""

// Valid reports whether r references a cached node.
func (r Ref) Valid() bool { return r != NoRef }

// translator turns shader tree nodes into cached textures of one material.
// It is not reused across materials.
type translator struct {
	conv     *Converter
	mat      *Material
	log      *slog.Logger
	visiting map[string]struct{} // Nodes on the current upstream path
	depth    int
	maxDepth int
}

// newTranslator creates a translator writing into m.
func newTranslator(c *Converter, m *Material) *translator {
	return &translator{
		conv:     c,
		mat:      m,
		log:      c.opt.Logger,
		visiting: make(map[string]struct{}),
		maxDepth: c.opt.MaxDepth,
	}
}

// translate returns the cache key of the translated node, or NoRef.
// Failures stay local to the node: they are logged and read as NoRef.
func (t *translator) translate(n Node) Ref {
	var (
		ref Ref
		typ NodeType
		id  string
	)
	err := guard(func() error {
		id = n.InternalName()
		if _, ok := t.mat.Nodes[id]; ok {
			ref = Ref(id)
			return nil
		}
		typ = n.Type()
		var err error
		ref, err = t.translateNode(n, id, typ)
		return err
	})
	if err != nil {
		t.log.Warn("node translation failed",
			slog.String("material", t.mat.Name),
			slog.String("node", id),
			slog.String("type", typ.String()),
			slog.Any("err", err))
		return NoRef
	}

	return ref
}

// translateNode dispatches an uncached node by type, guarding against
// cycles and runaway depth.
func (t *translator) translateNode(n Node, id string, typ NodeType) (Ref, error) {
	if _, ok := t.visiting[id]; ok {
		return NoRef, fmt.Errorf("%w at %q", ErrCycle, id)
	}
	if t.depth >= t.maxDepth {
		return NoRef, fmt.Errorf("%w: more than %d nodes below a channel", ErrDepthExceeded, t.maxDepth)
	}

	t.visiting[id] = struct{}{}
	t.depth++
	defer func() {
		delete(t.visiting, id)
		t.depth--
	}()

	return t.dispatch(n, id, typ)
}

// dispatch translates n according to its type.
func (t *translator) dispatch(n Node, id string, typ NodeType) (Ref, error) {
	if build := t.builder(typ); build != nil {
		tex, err := build(n)
		if err != nil || tex == nil {
			return NoRef, err
		}

		t.mat.Nodes[id] = tex
		return Ref(id), nil
	}

	switch typ {
	// Stop nodes discard their upstream tree.
	case NodeTypeScatter, NodeTypeDiffuse:
		return NoRef, nil

	// Edge blending is handled by the renderer; only its inputs matter.
	case NodeTypeEdgeBlend:
		return t.scan(n, "Attenuation"), nil

	case NodeTypeAnisotropic:
		return t.anisotropic(n)
	case NodeTypeGlossy, NodeTypeSpecular:
		return t.glossy(n, typ)
	case NodeTypeBlinn:
		return t.blinn(n)
	case NodeTypePhong:
		return t.phong(n)
	case NodeTypeSkin:
		return t.skin(n), nil

	default:
		return t.scan(n), nil
	}
}

// builder returns the texture builder of a node type, or nil when the type
// does not translate into a cached texture.
func (t *translator) builder(typ NodeType) func(Node) (*Texture, error) {
	switch typ {
	case NodeTypeImageMap:
		return t.imageMap
	case NodeTypeBlender:
		return t.blender
	case NodeTypeColorMath:
		return t.colorMath
	case NodeTypeMath:
		return t.math
	case NodeTypeColorRamp:
		return t.colorRamp
	case NodeTypeHair:
		return t.hair
	case NodeTypeSpots:
		return t.spots
	case NodeTypeNoise:
		return t.noise
	case NodeTypeClouds:
		return t.clouds
	case NodeTypeTurbulence:
		return t.turbulence
	case NodeTypeMarble:
		return t.marble
	case NodeTypeGranite:
		return t.granite
	case NodeTypeComponent:
		return t.component
	default:
		return nil
	}
}

// scan walks the inputs of a node the translator does not support and
// returns the first translatable upstream node. Branches are not merged.
func (t *translator) scan(n Node, ignore ...string) Ref {
	for _, in := range n.Inputs() {
		if slices.Contains(ignore, in.InternalName()) || slices.Contains(ignore, in.Name()) {
			continue
		}
		up := in.Upstream()
		if up == nil {
			continue
		}
		if ref := t.translate(up); ref.Valid() {
			return ref
		}
	}

	return NoRef
}

// upstream translates the node connected to in, if any.
func (t *translator) upstream(in Input) Ref {
	up := in.Upstream()
	if up == nil {
		return NoRef
	}
	return t.translate(up)
}

// input returns a required input of n.
func (t *translator) input(n Node, name string) (Input, error) {
	in, ok := n.Input(name)
	if !ok || in == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingInput, n.InternalName(), name)
	}
	return in, nil
}

// float reads a required scalar input.
func (t *translator) float(n Node, name string) (float64, error) {
	in, err := t.input(n, name)
	if err != nil {
		return 0, err
	}
	return in.Value().Float(), nil
}

// color reads a required color input.
func (t *translator) color(n Node, name string) (Color, error) {
	in, err := t.input(n, name)
	if err != nil {
		return Black, err
	}
	return in.Value().AsColor(), nil
}

// operand is an input value together with its translated subgraph.
type operand struct {
	value     Value
	ref       Ref
	connected bool // A subgraph is attached, whether or not it translated
}

// failed reports whether a subgraph was attached but did not translate.
func (o operand) failed() bool { return o.connected && !o.ref.Valid() }

// operand reads an input and translates its subgraph. A missing input is
// reported once per material and reads as a zero operand.
func (t *translator) operand(n Node, name string) operand {
	in, err := t.input(n, name)
	if err != nil {
		t.conv.reportOnce(t.mat.Name, n.InternalName()+"."+name, err)
		return operand{}
	}

	op := operand{value: in.Value()}
	if up := in.Upstream(); up != nil {
		op.connected = true
		op.ref = t.translate(up)
	}

	return op
}

// imageMap translates an image map. An empty file name produces no output.
func (t *translator) imageMap(n Node) (*Texture, error) {
	src, err := t.input(n, "Image_Source")
	if err != nil {
		return nil, err
	}
	fileName := src.Value().AsString()
	if fileName == "" {
		return nil, nil
	}

	var vals [4]float64
	for i, name := range [...]string{"U_Scale", "V_Scale", "U_Offset", "V_Offset"} {
		if vals[i], err = t.float(n, name); err != nil {
			return nil, err
		}
	}

	tex := newTexture(TextureKindImageMap)
	tex.ImageMap = &ImageMap{
		FileName: fileName,
		UTile:    1 / nonZero(vals[0]),
		VTile:    1 / nonZero(vals[1]),
		UOffset:  vals[2],
		VOffset:  vals[3],
		Gain:     1,
	}

	return tex, nil
}

// nonZero guards a scale divisor.
func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// blender translates a blend node. Blending two flat colors is not worth a
// texture, so at least one side must translate.
func (t *translator) blender(n Node) (*Texture, error) {
	in1 := t.operand(n, "Input_1")
	in2 := t.operand(n, "Input_2")
	amount := t.operand(n, "Blending")
	if !in1.ref.Valid() && !in2.ref.Valid() {
		return nil, nil
	}

	tex := newTexture(TextureKindMix)
	tex.Mix = &Mix{
		Tex1Color: in1.value.AsColor(),
		Tex1Map:   in1.ref,
		Tex2Color: in2.value.AsColor(),
		Tex2Map:   in2.ref,
		Amount:    amount.value.Float(),
		AmountMap: amount.ref,
	}

	return tex, nil
}

// colorMath translates a color math node. Only add, subtract and multiply
// are supported. An operand whose subgraph failed to translate cannot be
// replaced by its flat color: when one side fails it is dropped and the
// operator degrades to multiply, when both fail there is no output.
func (t *translator) colorMath(n Node) (*Texture, error) {
	code, err := t.float(n, "Math_Argument")
	if err != nil {
		return nil, err
	}
	fn, ok := mathFunction(code)
	if !ok {
		return nil, nil
	}

	v1 := t.operand(n, "Value_1")
	v2 := t.operand(n, "Value_2")
	if v1.failed() && v2.failed() {
		return nil, nil
	}

	cm := &ColorMath{
		Value1:   &ColorOperand{Color: v1.value.AsColor(), Map: v1.ref},
		Value2:   &ColorOperand{Color: v2.value.AsColor(), Map: v2.ref},
		Function: fn,
	}
	if v1.failed() {
		cm.Value1 = nil
		cm.Function = MathMultiply
	}
	if v2.failed() {
		cm.Value2 = nil
		cm.Function = MathMultiply
	}

	tex := newTexture(TextureKindColorMath)
	tex.ColorMath = cm
	return tex, nil
}

// math translates a scalar math node. Only add, subtract and multiply are supported.
func (t *translator) math(n Node) (*Texture, error) {
	code, err := t.float(n, "Math_Argument")
	if err != nil {
		return nil, err
	}
	fn, ok := mathFunction(code)
	if !ok {
		return nil, nil
	}

	v1 := t.operand(n, "Value_1")
	v2 := t.operand(n, "Value_2")

	tex := newTexture(TextureKindMath)
	tex.Math = &Math{
		Value1:   ScalarOperand{Value: v1.value.Float(), Map: v1.ref},
		Value2:   ScalarOperand{Value: v2.value.Float(), Map: v2.ref},
		Function: fn,
	}

	return tex, nil
}

// colorRamp translates a color ramp into a band with evenly spaced stops.
func (t *translator) colorRamp(n Node) (*Texture, error) {
	band := &Band{Offsets: BandOffsets}
	for i, name := range [...]string{"Color1", "Color2", "Color3", "Color4"} {
		c, err := t.color(n, name)
		if err != nil {
			return nil, err
		}
		band.Colors[i] = c
	}

	in, err := t.input(n, "Input")
	if err != nil {
		return nil, err
	}
	band.Amount = in.Value().Float()
	band.AmountMap = t.upstream(in)

	tex := newTexture(TextureKindBand)
	tex.Band = band
	return tex, nil
}

// component translates a color component extractor.
func (t *translator) component(n Node) (*Texture, error) {
	channel, err := t.float(n, "Component")
	if err != nil {
		return nil, err
	}
	in, err := t.input(n, "Color")
	if err != nil {
		return nil, err
	}

	tex := newTexture(TextureKindComponent)
	tex.Component = &Component{
		Channel: int(channel),
		Color:   in.Value().AsColor(),
		Map:     t.upstream(in),
	}

	return tex, nil
}
