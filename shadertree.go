package remat

// ShaderTree is an in-memory shader tree. It implements SourceMaterial and is
// what the shader tree decoder produces.
type ShaderTree struct {
	name  string               // Material name
	nodes []*TreeNode          // Nodes in declaration order
	index map[string]*TreeNode // Nodes by internal name
}

// TreeNode is a node of a ShaderTree.
type TreeNode struct {
	tree     *ShaderTree
	typ      NodeType
	keyword  string // Type keyword as written in the source
	name     string
	internal string
	inputs   []*TreeInput
}

// TreeInput is an input of a TreeNode.
type TreeInput struct {
	node     *TreeNode
	name     string
	internal string
	value    Value
	upstream string // Internal name of the connected node
}

// NewShaderTree creates an empty tree for the named material.
func NewShaderTree(material string) *ShaderTree {
	return &ShaderTree{name: material, index: make(map[string]*TreeNode)}
}

// Name implements SourceMaterial.
func (t *ShaderTree) Name() string { return t.name }

// RootNode implements SourceMaterial. The root is the first surface node,
// or the first light node when the tree belongs to a light.
func (t *ShaderTree) RootNode() Node {
	var light *TreeNode
	for _, n := range t.nodes {
		if n.typ == NodeTypeSurface {
			return n
		}
		if n.typ == NodeTypeLight && light == nil {
			light = n
		}
	}
	if light != nil {
		return light
	}
	return nil
}

// Nodes returns the nodes in declaration order.
func (t *ShaderTree) Nodes() []*TreeNode { return t.nodes }

// Lookup returns the node with the given internal name.
func (t *ShaderTree) Lookup(internalName string) (*TreeNode, bool) {
	n, ok := t.index[internalName]
	return n, ok
}

// AddNode appends a node. A node with the same internal name is replaced in place.
func (t *ShaderTree) AddNode(typ NodeType, internalName string) *TreeNode {
	return t.addNode(typ, typ.String(), internalName)
}

// addNode appends a node keeping the source keyword of its type.
func (t *ShaderTree) addNode(typ NodeType, keyword, internalName string) *TreeNode {
	n := &TreeNode{tree: t, typ: typ, keyword: keyword, name: internalName, internal: internalName}
	if old, ok := t.index[internalName]; ok {
		for i := range t.nodes {
			if t.nodes[i] == old {
				t.nodes[i] = n
			}
		}
	} else {
		t.nodes = append(t.nodes, n)
	}
	t.index[internalName] = n
	return n
}

// Type implements Node.
func (n *TreeNode) Type() NodeType { return n.typ }

// Keyword returns the type keyword as written in the source.
func (n *TreeNode) Keyword() string { return n.keyword }

// InternalName implements Node.
func (n *TreeNode) InternalName() string { return n.internal }

// Name implements Node.
func (n *TreeNode) Name() string { return n.name }

// SetName sets the display name.
func (n *TreeNode) SetName(name string) *TreeNode {
	n.name = name
	return n
}

// Inputs implements Node.
func (n *TreeNode) Inputs() []Input {
	out := make([]Input, 0, len(n.inputs))
	for _, in := range n.inputs {
		out = append(out, in)
	}
	return out
}

// Input implements Node.
func (n *TreeNode) Input(internalName string) (Input, bool) {
	in := n.input(internalName)
	if in == nil {
		return nil, false
	}
	return in, true
}

// input returns the named input or nil.
func (n *TreeNode) input(internalName string) *TreeInput {
	for _, in := range n.inputs {
		if in.internal == internalName {
			return in
		}
	}
	return nil
}

// ensureInput returns the named input, creating it when missing.
func (n *TreeNode) ensureInput(internalName string) *TreeInput {
	if in := n.input(internalName); in != nil {
		return in
	}
	in := &TreeInput{node: n, name: internalName, internal: internalName}
	n.inputs = append(n.inputs, in)
	return in
}

// Set sets the literal value of an input, creating the input when missing.
func (n *TreeNode) Set(input string, v Value) *TreeNode {
	n.ensureInput(input).value = v
	return n
}

// SetFloat sets a scalar input.
func (n *TreeNode) SetFloat(input string, v float64) *TreeNode {
	return n.Set(input, NumberValue(v))
}

// SetColor sets a color input.
func (n *TreeNode) SetColor(input string, c Color) *TreeNode {
	return n.Set(input, ColorValue(c))
}

// SetString sets a string input.
func (n *TreeNode) SetString(input string, s string) *TreeNode {
	return n.Set(input, StringValue(s))
}

// Connect connects the upstream node to an input, creating the input when missing.
func (n *TreeNode) Connect(input string, upstream *TreeNode) *TreeNode {
	in := n.ensureInput(input)
	in.upstream = ""
	if upstream != nil {
		in.upstream = upstream.internal
	}
	return n
}

// ConnectName connects an input to a node by internal name. The node may be
// declared later; unresolved names read as unconnected.
func (n *TreeNode) ConnectName(input, upstream string) *TreeNode {
	n.ensureInput(input).upstream = upstream
	return n
}

// Name implements Input.
func (in *TreeInput) Name() string { return in.name }

// InternalName implements Input.
func (in *TreeInput) InternalName() string { return in.internal }

// Value implements Input.
func (in *TreeInput) Value() Value { return in.value }

// Upstream implements Input.
func (in *TreeInput) Upstream() Node {
	if in.upstream == "" {
		return nil
	}
	up, ok := in.node.tree.index[in.upstream]
	if !ok {
		return nil
	}
	return up
}
