package remat

// Calibration constants for procedural nodes. They were tuned by comparing
// renders side by side and are not derived from the host's noise functions.
const (
	spotsSizeDivisor   = 10    // Spot_Size to distorted noise size
	spotsAmount        = 1.820 // Distortion amount
	fbmScale           = 0.03  // Host noise has a very fine grain
	fbmOctaves         = 4
	fbmRoughness       = 1.5
	turbulenceSize     = 0.3 // x_Index to clouds size
	turbulenceContrast = 2   // Gain multiplier
	turbulenceDepth    = 3   // Octaves divisor
	turbulenceBright   = 0.2 // Bias offset
	marbleSize         = 0.25
	marbleTurbulence   = 6
	marbleContrast     = 2
	marbleBrightness   = 1
	graniteSizeDivisor = 1000
	graniteContrast    = 1.0
	graniteBrightness  = 1.3
)

// noiseBasis maps the host Noise_Type input: 1 is the original Perlin noise,
// anything else the improved one.
func (t *translator) noiseBasis(n Node) (string, error) {
	v, err := t.float(n, "Noise_Type")
	if err != nil {
		return "", err
	}
	if v == 1 {
		return NoiseOriginalPerlin, nil
	}
	return NoiseImprovedPerlin, nil
}

// floats reads several required scalar inputs in order.
func (t *translator) floats(n Node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := t.float(n, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// spots translates a spots node into a distorted noise.
func (t *translator) spots(n Node) (*Texture, error) {
	basis, err := t.noiseBasis(n)
	if err != nil {
		return nil, err
	}
	v, err := t.floats(n, "Spot_Size", "Softness", "Threshold")
	if err != nil {
		return nil, err
	}
	base := t.operand(n, "Base_Color")
	spot := t.operand(n, "Spot_Color")

	tex := newTexture(TextureKindDistortedNoise)
	tex.DistortedNoise = &DistortedNoise{
		BaseColor:       base.value.AsColor(),
		BaseMap:         base.ref,
		SpotMap:         spot.ref,
		NoiseBasis:      basis,
		NoiseDistortion: NoiseImprovedPerlin,
		Size:            v[0] / spotsSizeDivisor,
		Contrast:        v[1],
		Brightness:      v[2],
		Amount:          spotsAmount,
	}

	return tex, nil
}

// noise translates a noise node. The host parameters barely change the
// pattern, so a fixed FBM stands in for it.
func (t *translator) noise(Node) (*Texture, error) {
	tex := newTexture(TextureKindFBM)
	tex.FBM = &FBM{Scale: fbmScale, Octaves: fbmOctaves, Roughness: fbmRoughness}
	return tex, nil
}

// clouds translates a clouds node.
func (t *translator) clouds(n Node) (*Texture, error) {
	basis, err := t.noiseBasis(n)
	if err != nil {
		return nil, err
	}
	v, err := t.floats(n, "Scale", "Gain", "Complexity", "Bias", "Bottom")
	if err != nil {
		return nil, err
	}
	sky := t.operand(n, "Sky_Color")
	cloud := t.operand(n, "Cloud_Color")

	style := CloudsSoft
	if v[4] >= 0.5 {
		style = CloudsHard
	}

	tex := newTexture(TextureKindClouds)
	tex.Clouds = &Clouds{
		SkyColor:   sky.value.AsColor(),
		SkyMap:     sky.ref,
		CloudMap:   cloud.ref,
		NoiseBasis: basis,
		Size:       v[0],
		Contrast:   v[1],
		Depth:      v[2] - 1, // Host complexity is 1-based
		Brightness: v[3],
		Style:      style,
	}

	return tex, nil
}

// turbulence translates a turbulence node into hard clouds.
func (t *translator) turbulence(n Node) (*Texture, error) {
	basis, err := t.noiseBasis(n)
	if err != nil {
		return nil, err
	}
	v, err := t.floats(n, "x_Index", "Gain", "Octaves", "Bias")
	if err != nil {
		return nil, err
	}

	tex := newTexture(TextureKindClouds)
	tex.Clouds = &Clouds{
		NoiseBasis: basis,
		Size:       v[0] * turbulenceSize,
		Contrast:   v[1] * turbulenceContrast,
		Depth:      v[2] / turbulenceDepth,
		Brightness: v[3] + turbulenceBright,
		Style:      CloudsHard,
	}

	return tex, nil
}

// marble translates a marble node. The host marble looks like banded wood.
func (t *translator) marble(n Node) (*Texture, error) {
	basis, err := t.noiseBasis(n)
	if err != nil {
		return nil, err
	}
	v, err := t.floats(n, "Scale", "Turbulence")
	if err != nil {
		return nil, err
	}

	tex := newTexture(TextureKindWood)
	tex.Wood = &Wood{
		NoiseBasis: basis,
		Size:       v[0] * marbleSize,
		Turbulence: v[1] * marbleTurbulence,
		Contrast:   marbleContrast,
		Brightness: marbleBrightness,
		SoftNoise:  false,
		Pattern:    "BAND_NOISE",
		VeinWave:   "SIN",
	}

	return tex, nil
}

// granite translates a granite node into soft clouds.
func (t *translator) granite(n Node) (*Texture, error) {
	basis, err := t.noiseBasis(n)
	if err != nil {
		return nil, err
	}
	v, err := t.floats(n, "Scale", "Shades")
	if err != nil {
		return nil, err
	}

	tex := newTexture(TextureKindClouds)
	tex.Clouds = &Clouds{
		NoiseBasis: basis,
		Size:       v[0] / graniteSizeDivisor,
		Contrast:   graniteContrast,
		Depth:      v[1] - 1,
		Brightness: graniteBrightness,
		Style:      CloudsSoft,
	}

	return tex, nil
}
