package remat

// Node is a node of the host's shader tree. The host owns it; the
// translator only reads it.
type Node interface {
	// Type returns the node type code.
	Type() NodeType
	// InternalName returns the stable node name used as its identity.
	InternalName() string
	// Name returns the display name.
	Name() string
	// Inputs returns the inputs in declared order.
	Inputs() []Input
	// Input looks an input up by internal name.
	Input(internalName string) (Input, bool)
}

// Input is a node input channel.
type Input interface {
	// Name returns the display name.
	Name() string
	// InternalName returns the stable input name.
	InternalName() string
	// Value returns the current literal value.
	Value() Value
	// Upstream returns the node connected to the input, or nil.
	Upstream() Node
}

// SourceMaterial is a host material with a shader tree.
type SourceMaterial interface {
	// Name returns the material name.
	Name() string
	// RootNode returns the surface or light node, or nil when there is none.
	RootNode() Node
}
