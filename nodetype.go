package remat

import "strings"

// NodeType is the host's node type code.
type NodeType int

// Node types known to the translator. Anything else decodes as NodeTypeUnknown
// and is scanned for translatable upstream nodes.
const (
	NodeTypeUnknown NodeType = iota
	NodeTypeSurface
	NodeTypeLight
	NodeTypeImageMap
	NodeTypeBlender
	NodeTypeScatter
	NodeTypeDiffuse
	NodeTypeEdgeBlend
	NodeTypeColorMath
	NodeTypeMath
	NodeTypeColorRamp
	NodeTypeHair
	NodeTypeSpots
	NodeTypeNoise
	NodeTypeClouds
	NodeTypeTurbulence
	NodeTypeMarble
	NodeTypeGranite
	NodeTypeAnisotropic
	NodeTypeGlossy
	NodeTypeSpecular
	NodeTypeBlinn
	NodeTypePhong
	NodeTypeSkin
	NodeTypeComponent
)

// nodeTypeKeywords are the keywords used in shader tree files.
var nodeTypeKeywords = [...]string{
	NodeTypeUnknown:     "unknown",
	NodeTypeSurface:     "poser",
	NodeTypeLight:       "light",
	NodeTypeImageMap:    "image_map",
	NodeTypeBlender:     "blender",
	NodeTypeScatter:     "scatter",
	NodeTypeDiffuse:     "diffuse",
	NodeTypeEdgeBlend:   "edge_blend",
	NodeTypeColorMath:   "color_math",
	NodeTypeMath:        "math_functions",
	NodeTypeColorRamp:   "colorramp",
	NodeTypeHair:        "hair",
	NodeTypeSpots:       "spots",
	NodeTypeNoise:       "noise",
	NodeTypeClouds:      "clouds",
	NodeTypeTurbulence:  "turbulence",
	NodeTypeMarble:      "marble",
	NodeTypeGranite:     "granite",
	NodeTypeAnisotropic: "anisotropic",
	NodeTypeGlossy:      "glossy",
	NodeTypeSpecular:    "specular",
	NodeTypeBlinn:       "blinn",
	NodeTypePhong:       "phong",
	NodeTypeSkin:        "skin",
	NodeTypeComponent:   "comp",
}

// String returns the shader tree keyword of the node type.
func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeKeywords) {
		return nodeTypeKeywords[NodeTypeUnknown]
	}
	return nodeTypeKeywords[t]
}

// ParseNodeType maps a shader tree keyword to a NodeType.
// Unrecognized keywords return NodeTypeUnknown.
func ParseNodeType(keyword string) NodeType {
	k := strings.ToLower(strings.TrimSpace(keyword))
	for i, kw := range nodeTypeKeywords {
		if kw == k {
			return NodeType(i)
		}
	}
	return NodeTypeUnknown
}

// NodeTypes returns every known node type, in declaration order.
func NodeTypes() []NodeType {
	out := make([]NodeType, 0, len(nodeTypeKeywords))
	for i := range nodeTypeKeywords {
		out = append(out, NodeType(i))
	}
	return out
}

// NodeRole describes what the translator does with a node type.
type NodeRole string

const (
	// RoleTexture nodes translate into a cached texture description.
	RoleTexture NodeRole = "texture"
	// RoleSink nodes write material scalars and may pass an upstream map through.
	RoleSink NodeRole = "sink"
	// RoleStop nodes discard everything upstream.
	RoleStop NodeRole = "stop"
	// RoleScan nodes are skipped; their inputs are scanned for a translatable node.
	RoleScan NodeRole = "scan"
)

// Role reports how the translator handles the node type.
func (t NodeType) Role() NodeRole {
	switch t {
	case NodeTypeImageMap, NodeTypeBlender, NodeTypeColorMath, NodeTypeMath,
		NodeTypeColorRamp, NodeTypeHair, NodeTypeSpots, NodeTypeNoise,
		NodeTypeClouds, NodeTypeTurbulence, NodeTypeMarble, NodeTypeGranite,
		NodeTypeComponent:
		return RoleTexture
	case NodeTypeAnisotropic, NodeTypeGlossy, NodeTypeSpecular, NodeTypeBlinn,
		NodeTypePhong, NodeTypeSkin:
		return RoleSink
	case NodeTypeScatter, NodeTypeDiffuse:
		return RoleStop
	default:
		return RoleScan
	}
}
