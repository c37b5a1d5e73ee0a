package remat

// Sink nodes describe the specular response of the surface. They write
// roughness and specular values straight into the material instead of
// producing a texture, and at most pass an upstream map through.

// blinnMaxReflectivity is the practical upper bound of Blinn reflectivity.
const blinnMaxReflectivity = 5.0

// setRoughness sets both roughness axes.
func (t *translator) setRoughness(v float64) {
	t.mat.URoughness = v
	t.mat.VRoughness = v
}

// hair translates a hair node into a band running from root to tip color.
// The hair node also owns the specular response of the material: the
// alternate specular slot is cleared and the primary one comes from the
// node's own specular input.
func (t *translator) hair(n Node) (*Texture, error) {
	root, err := t.color(n, "Root_Color")
	if err != nil {
		return nil, err
	}
	tip, err := t.color(n, "Tip_Color")
	if err != nil {
		return nil, err
	}
	spec, err := t.input(n, "Specular_Color")
	if err != nil {
		return nil, err
	}

	t.mat.Specular2 = Channel{}
	t.mat.Specular.Color = spec.Value().AsColor()
	t.mat.Specular.Map = t.upstream(spec)

	tex := newTexture(TextureKindBand)
	tex.Band = &Band{
		Offsets: BandOffsets,
		Colors:  [4]Color{root, tip, tip, tip},
		Amount:  1,
	}

	return tex, nil
}

// anisotropic sets the roughness axes and passes through a map feeding the
// specular value.
func (t *translator) anisotropic(n Node) (Ref, error) {
	u, err := t.float(n, "u_Roughness")
	if err != nil {
		return NoRef, err
	}
	v, err := t.float(n, "v_Roughness")
	if err != nil {
		return NoRef, err
	}
	t.mat.URoughness = u
	t.mat.VRoughness = v

	if in, ok := n.Input("Specular_Value"); ok && in != nil {
		return t.upstream(in), nil
	}
	return NoRef, nil
}

// glossy handles glossy and specular nodes. The specular color is scaled by
// the node strength (Ks for glossy, Specular_Value for specular).
func (t *translator) glossy(n Node, typ NodeType) (Ref, error) {
	if in, ok := n.Input("Roughness"); ok && in != nil {
		t.setRoughness(in.Value().Float())
	}

	strengthInput := "Specular_Value"
	if typ == NodeTypeGlossy {
		strengthInput = "Ks"
	}
	strength, err := t.float(n, strengthInput)
	if err != nil {
		return NoRef, err
	}
	spec, err := t.input(n, "Specular_Color")
	if err != nil {
		return NoRef, err
	}
	t.mat.Specular.Color = spec.Value().AsColor().Scale(strength)

	return t.upstream(spec), nil
}

// blinn maps reflectivity (0-5) to roughness and looks for a specular map
// among its inputs.
func (t *translator) blinn(n Node) (Ref, error) {
	refl, err := t.input(n, "Reflectivity")
	if err != nil {
		return NoRef, err
	}
	t.setRoughness(1 - refl.Value().Float()/blinnMaxReflectivity)
	if ref := t.upstream(refl); ref.Valid() {
		t.mat.RoughnessMap = ref
	}

	if ref := t.scan(n); ref.Valid() {
		t.mat.Specular.Map = ref
	}
	return NoRef, nil
}

// phong maps the specular value to roughness and takes the specular color as is.
func (t *translator) phong(n Node) (Ref, error) {
	strength, err := t.float(n, "Specular_Value")
	if err != nil {
		return NoRef, err
	}
	spec, err := t.input(n, "Specular_Color")
	if err != nil {
		return NoRef, err
	}
	t.setRoughness(1 - strength)
	t.mat.Specular.Color = spec.Value().AsColor()

	return t.upstream(spec), nil
}

// skin flags the material as skin. The node itself is not translated but
// its inputs may lead to one that is.
func (t *translator) skin(n Node) Ref {
	t.mat.IsSkin = true
	return t.scan(n)
}
