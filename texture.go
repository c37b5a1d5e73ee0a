package remat

// TextureKind selects the target texture type of a translated node.
type TextureKind string

const (
	TextureKindBand           TextureKind = "band"           // Four stop gradient
	TextureKindClouds         TextureKind = "clouds"         // Clouds noise
	TextureKindFBM            TextureKind = "fbm"            // Fractal brownian motion noise
	TextureKindImageMap       TextureKind = "imagemap"       // Image file
	TextureKindMix            TextureKind = "mix"            // Blend of two textures
	TextureKindDistortedNoise TextureKind = "distortednoise" // Distorted noise
	TextureKindColorMath      TextureKind = "colormath"      // Color arithmetic
	TextureKindMath           TextureKind = "math"           // Scalar arithmetic
	TextureKindComponent      TextureKind = "component"      // Single channel of a color
	TextureKindWood           TextureKind = "wood"           // Wood rings
)

// textureCodes are the renderer-side texture type codes.
var textureCodes = map[TextureKind]int{
	TextureKindBand:           100,
	TextureKindWood:           111,
	TextureKindClouds:         130,
	TextureKindFBM:            160,
	TextureKindImageMap:       170,
	TextureKindMix:            190,
	TextureKindDistortedNoise: 225,
	TextureKindColorMath:      230,
	TextureKindMath:           235,
	TextureKindComponent:      250,
}

// Code returns the renderer texture type code, or 0 for an unknown kind.
func (k TextureKind) Code() int { return textureCodes[k] }

// Texture is a translated node. Kind selects which payload is set.
type Texture struct {
	ImageMap       *ImageMap       `json:"imageMap,omitempty" yaml:"imageMap,omitempty"`             // Image map payload
	Mix            *Mix            `json:"mix,omitempty" yaml:"mix,omitempty"`                       // Mix payload
	Band           *Band           `json:"band,omitempty" yaml:"band,omitempty"`                     // Band payload
	DistortedNoise *DistortedNoise `json:"distortedNoise,omitempty" yaml:"distortedNoise,omitempty"` // Distorted noise payload
	FBM            *FBM            `json:"fbm,omitempty" yaml:"fbm,omitempty"`                       // FBM payload
	Clouds         *Clouds         `json:"clouds,omitempty" yaml:"clouds,omitempty"`                 // Clouds payload
	Wood           *Wood           `json:"wood,omitempty" yaml:"wood,omitempty"`                     // Wood payload
	ColorMath      *ColorMath      `json:"colorMath,omitempty" yaml:"colorMath,omitempty"`           // Color math payload
	Math           *Math           `json:"math,omitempty" yaml:"math,omitempty"`                     // Scalar math payload
	Component      *Component      `json:"component,omitempty" yaml:"component,omitempty"`           // Component payload
	Kind           TextureKind     `json:"kind" yaml:"kind"`                                         // Texture kind
	Code           int             `json:"code" yaml:"code"`                                         // Renderer type code
}

// newTexture creates a Texture of the given kind.
func newTexture(kind TextureKind) *Texture {
	return &Texture{Kind: kind, Code: kind.Code()}
}

// Refs returns the node cache keys this texture depends on.
func (t *Texture) Refs() []Ref {
	var out []Ref
	add := func(refs ...Ref) {
		for _, r := range refs {
			if r.Valid() {
				out = append(out, r)
			}
		}
	}

	switch {
	case t.Mix != nil:
		add(t.Mix.Tex1Map, t.Mix.Tex2Map, t.Mix.AmountMap)
	case t.Band != nil:
		add(t.Band.AmountMap)
	case t.DistortedNoise != nil:
		add(t.DistortedNoise.BaseMap, t.DistortedNoise.SpotMap)
	case t.Clouds != nil:
		add(t.Clouds.SkyMap, t.Clouds.CloudMap)
	case t.ColorMath != nil:
		if t.ColorMath.Value1 != nil {
			add(t.ColorMath.Value1.Map)
		}
		if t.ColorMath.Value2 != nil {
			add(t.ColorMath.Value2.Map)
		}
	case t.Math != nil:
		add(t.Math.Value1.Map, t.Math.Value2.Map)
	case t.Component != nil:
		add(t.Component.Map)
	}

	return out
}

// ImageMap is an image file texture.
type ImageMap struct {
	FileName string  `json:"fileName" yaml:"fileName"` // Image file path as given by the host
	UTile    float64 `json:"uTile" yaml:"uTile"`       // U tiling, 1/U_Scale
	VTile    float64 `json:"vTile" yaml:"vTile"`       // V tiling, 1/V_Scale
	UOffset  float64 `json:"uOffset" yaml:"uOffset"`   // U offset
	VOffset  float64 `json:"vOffset" yaml:"vOffset"`   // V offset
	Gain     float64 `json:"gain" yaml:"gain"`         // Texture gain
}

// Mix blends two textures.
type Mix struct {
	Tex1Map   Ref     `json:"tex1Map,omitempty" yaml:"tex1Map,omitempty"`     // First texture reference
	Tex2Map   Ref     `json:"tex2Map,omitempty" yaml:"tex2Map,omitempty"`     // Second texture reference
	AmountMap Ref     `json:"amountMap,omitempty" yaml:"amountMap,omitempty"` // Mix amount reference
	Tex1Color Color   `json:"tex1Color" yaml:"tex1Color"`                     // First color
	Tex2Color Color   `json:"tex2Color" yaml:"tex2Color"`                     // Second color
	Amount    float64 `json:"amount" yaml:"amount"`                           // Mix amount
}

// BandOffsets are the fixed, evenly spaced stops of a band texture.
var BandOffsets = [4]float64{0, 0.33, 0.66, 1.0}

// Band is a four stop gradient.
type Band struct {
	AmountMap Ref        `json:"amountMap,omitempty" yaml:"amountMap,omitempty"` // Driving texture reference
	Offsets   [4]float64 `json:"offsets" yaml:"offsets,flow"`                    // Stop positions
	Colors    [4]Color   `json:"colors" yaml:"colors"`                           // Stop colors
	Amount    float64    `json:"amount" yaml:"amount"`                           // Driving value
}

// Noise basis names.
const (
	NoiseOriginalPerlin = "original perlin"
	NoiseImprovedPerlin = "improved perlin"
)

// Cloud styles.
const (
	CloudsSoft = "soft"
	CloudsHard = "hard"
)

// DistortedNoise is a distorted noise texture.
type DistortedNoise struct {
	BaseMap         Ref     `json:"baseMap,omitempty" yaml:"baseMap,omitempty"` // Base texture reference
	SpotMap         Ref     `json:"spotMap,omitempty" yaml:"spotMap,omitempty"` // Spot texture reference
	NoiseBasis      string  `json:"noiseBasis" yaml:"noiseBasis"`               // Noise basis
	NoiseDistortion string  `json:"noiseDistortion" yaml:"noiseDistortion"`     // Distortion basis
	BaseColor       Color   `json:"baseColor" yaml:"baseColor"`                 // Base color
	Size            float64 `json:"size" yaml:"size"`                           // Noise size
	Contrast        float64 `json:"contrast" yaml:"contrast"`                   // Contrast
	Brightness      float64 `json:"brightness" yaml:"brightness"`               // Brightness
	Amount          float64 `json:"amount" yaml:"amount"`                       // Distortion amount
}

// FBM is a fractal brownian motion noise.
type FBM struct {
	Scale     float64 `json:"scale" yaml:"scale"`         // Texture scale
	Octaves   int     `json:"octaves" yaml:"octaves"`     // Octave count
	Roughness float64 `json:"roughness" yaml:"roughness"` // Roughness
}

// Clouds is a clouds noise texture.
type Clouds struct {
	SkyMap     Ref     `json:"skyMap,omitempty" yaml:"skyMap,omitempty"`     // Sky texture reference
	CloudMap   Ref     `json:"cloudMap,omitempty" yaml:"cloudMap,omitempty"` // Cloud texture reference
	NoiseBasis string  `json:"noiseBasis" yaml:"noiseBasis"`                 // Noise basis
	Style      string  `json:"style" yaml:"style"`                           // Soft or hard
	SkyColor   Color   `json:"skyColor" yaml:"skyColor"`                     // Sky color
	Size       float64 `json:"size" yaml:"size"`                             // Noise size
	Contrast   float64 `json:"contrast" yaml:"contrast"`                     // Contrast
	Brightness float64 `json:"brightness" yaml:"brightness"`                 // Brightness
	Depth      float64 `json:"depth" yaml:"depth"`                           // Zero based noise depth
}

// Wood is a wood rings texture.
type Wood struct {
	NoiseBasis string  `json:"noiseBasis" yaml:"noiseBasis"` // Noise basis
	Pattern    string  `json:"pattern" yaml:"pattern"`       // Ring pattern
	VeinWave   string  `json:"veinWave" yaml:"veinWave"`     // Vein wave form
	Size       float64 `json:"size" yaml:"size"`             // Noise size
	Turbulence float64 `json:"turbulence" yaml:"turbulence"` // Turbulence
	Contrast   float64 `json:"contrast" yaml:"contrast"`     // Contrast
	Brightness float64 `json:"brightness" yaml:"brightness"` // Brightness
	SoftNoise  bool    `json:"softNoise" yaml:"softNoise"`   // Soft noise
}

// MathFunction is an arithmetic operator.
type MathFunction string

const (
	MathAdd      MathFunction = "a" // Addition
	MathSubtract MathFunction = "s" // Subtraction
	MathMultiply MathFunction = "m" // Multiplication
)

// mathFunction maps the host function code to an operator. Only codes 1-3 are supported.
func mathFunction(code float64) (MathFunction, bool) {
	switch {
	case code < 1 || code > 3:
		return "", false
	case code == 1:
		return MathAdd, true
	case code == 2:
		return MathSubtract, true
	default:
		return MathMultiply, true
	}
}

// ColorOperand is a color math operand.
type ColorOperand struct {
	Map   Ref   `json:"map,omitempty" yaml:"map,omitempty"` // Texture reference
	Color Color `json:"color" yaml:"color"`                 // Literal color
}

// ColorMath combines two colors. A nil operand was dropped from the combination.
type ColorMath struct {
	Value1   *ColorOperand `json:"value1,omitempty" yaml:"value1,omitempty"` // First operand
	Value2   *ColorOperand `json:"value2,omitempty" yaml:"value2,omitempty"` // Second operand
	Function MathFunction  `json:"function" yaml:"function"`                 // Operator
}

// ScalarOperand is a scalar math operand.
type ScalarOperand struct {
	Map   Ref     `json:"map,omitempty" yaml:"map,omitempty"` // Texture reference
	Value float64 `json:"value" yaml:"value"`                 // Literal value
}

// Math combines two scalars.
type Math struct {
	Value1   ScalarOperand `json:"value1" yaml:"value1"`     // First operand
	Value2   ScalarOperand `json:"value2" yaml:"value2"`     // Second operand
	Function MathFunction  `json:"function" yaml:"function"` // Operator
}

// Component extracts one channel decomposition of a color.
type Component struct {
	Map     Ref   `json:"map,omitempty" yaml:"map,omitempty"` // Texture reference
	Color   Color `json:"color" yaml:"color"`                 // Literal color
	Channel int   `json:"channel" yaml:"channel"`             // Channel selector
}
