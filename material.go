package remat

// Material is the translated form of one host material.
//
// HasBuiltInAlpha is part of the record layout the renderer reads, but no
// host channel enables it: it starts false and a non-black ambient color only
// confirms that. Readers can treat it as always false.
type Material struct {
	Nodes           map[string]*Texture `json:"nodes" yaml:"nodes"`                                   // Translated nodes by source internal name
	Intensity       *float64            `json:"intensity,omitempty" yaml:"intensity,omitempty"`       // Light intensity, lights only
	Angle           *float64            `json:"angle,omitempty" yaml:"angle,omitempty"`               // Spotlight cone angle, lights only
	Name            string              `json:"name" yaml:"name"`                                     // Material name
	RoughnessMap    Ref                 `json:"roughnessMap,omitempty" yaml:"roughnessMap,omitempty"` // Roughness texture reference
	Diffuse         Channel             `json:"diffuse" yaml:"diffuse"`                               // Diffuse color
	Diffuse2        Channel             `json:"diffuse2" yaml:"diffuse2"`                             // Alternate diffuse color
	Specular        Channel             `json:"specular" yaml:"specular"`                             // Specular color
	Specular2       Channel             `json:"specular2" yaml:"specular2"`                           // Alternate specular color
	Coat            Channel             `json:"coat" yaml:"coat"`                                     // Coat color
	Bump            Channel             `json:"bump" yaml:"bump"`                                     // Bump map
	Displacement    Channel             `json:"displacement" yaml:"displacement"`                     // Displacement map
	Translucence    Channel             `json:"translucence" yaml:"translucence"`                     // Translucence color
	Alpha           Channel             `json:"alpha" yaml:"alpha"`                                   // Opacity
	Ambient         Channel             `json:"ambient" yaml:"ambient"`                               // Ambient, emission color
	URoughness      float64             `json:"uRoughness" yaml:"uRoughness"`                         // U roughness
	VRoughness      float64             `json:"vRoughness" yaml:"vRoughness"`                         // V roughness
	LightGain       float64             `json:"lightGain" yaml:"lightGain"`                           // Emission gain from Ambient_Value
	IsSkin          bool                `json:"isSkin" yaml:"isSkin"`                                 // Skin node found
	HasBuiltInAlpha bool                `json:"hasBuiltInAlpha" yaml:"hasBuiltInAlpha"`               // Light alpha switch of the renderer
}

// Channel is a named channel slot of a Material.
type Channel struct {
	Map         Ref     `json:"map,omitempty" yaml:"map,omitempty"`                 // Driving texture reference
	StrengthMap Ref     `json:"strengthMap,omitempty" yaml:"strengthMap,omitempty"` // Strength texture reference
	Color       Color   `json:"color" yaml:"color"`                                 // Literal color
	Strength    float64 `json:"strength" yaml:"strength"`                           // Channel strength
	Positive    float64 `json:"positive,omitempty" yaml:"positive,omitempty"`       // Positive extent in meters
	Negative    float64 `json:"negative,omitempty" yaml:"negative,omitempty"`       // Negative extent in meters
}

// HasMap reports whether a texture drives the channel.
func (c Channel) HasMap() bool { return c.Map.Valid() }

// NewMaterial creates a Material with default channel values.
func NewMaterial(name string) *Material {
	return &Material{
		Name:       name,
		Nodes:      make(map[string]*Texture),
		Coat:       Channel{Color: White},
		Alpha:      Channel{Strength: 1},
		URoughness: 1,
		VRoughness: 1,
	}
}

// Texture returns the cached node for a reference.
func (m *Material) Texture(ref Ref) (*Texture, bool) {
	if !ref.Valid() {
		return nil, false
	}
	t, ok := m.Nodes[string(ref)]
	return t, ok
}

// channelRefs returns every channel slot with its texture references.
func (m *Material) channelRefs() map[string][]Ref {
	return map[string][]Ref{
		"diffuse":      {m.Diffuse.Map, m.Diffuse.StrengthMap},
		"diffuse2":     {m.Diffuse2.Map},
		"specular":     {m.Specular.Map},
		"specular2":    {m.Specular2.Map},
		"coat":         {m.Coat.Map},
		"bump":         {m.Bump.Map},
		"displacement": {m.Displacement.Map},
		"translucence": {m.Translucence.Map},
		"alpha":        {m.Alpha.Map},
		"ambient":      {m.Ambient.Map},
		"roughness":    {m.RoughnessMap},
	}
}
