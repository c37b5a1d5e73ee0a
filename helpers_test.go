package remat

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
)

// stubNode is a host node that counts how often its type is read.
type stubNode struct {
	typ       NodeType
	id        string
	inputs    []*stubInput
	typeCalls int
}

func (n *stubNode) Type() NodeType       { n.typeCalls++; return n.typ }
func (n *stubNode) InternalName() string { return n.id }
func (n *stubNode) Name() string         { return n.id }

func (n *stubNode) Inputs() []Input {
	out := make([]Input, 0, len(n.inputs))
	for _, in := range n.inputs {
		out = append(out, in)
	}
	return out
}

func (n *stubNode) Input(name string) (Input, bool) {
	for _, in := range n.inputs {
		if in.name == name {
			return in, true
		}
	}
	return nil, false
}

// stubInput is a host input. A panicking input fails the way a broken host does.
type stubInput struct {
	name   string
	value  Value
	up     Node
	panics bool
}

func (in *stubInput) Name() string         { return in.name }
func (in *stubInput) InternalName() string { return in.name }
func (in *stubInput) Upstream() Node       { return in.up }

func (in *stubInput) Value() Value {
	if in.panics {
		panic("host: channel value unavailable")
	}
	return in.value
}

type stubMaterial struct {
	name string
	root Node
}

func (m stubMaterial) Name() string   { return m.name }
func (m stubMaterial) RootNode() Node { return m.root }

// newImageStub returns a stub image map node reading file.
func newImageStub(id, file string) *stubNode {
	return &stubNode{typ: NodeTypeImageMap, id: id, inputs: []*stubInput{
		{name: "Image_Source", value: StringValue(file)},
		{name: "U_Scale", value: NumberValue(1)},
		{name: "V_Scale", value: NumberValue(1)},
		{name: "U_Offset", value: NumberValue(0)},
		{name: "V_Offset", value: NumberValue(0)},
	}}
}

// addImage adds a complete image map node to tree.
func addImage(tree *ShaderTree, id, file string) *TreeNode {
	return tree.AddNode(NodeTypeImageMap, id).
		SetString("Image_Source", file).
		SetFloat("U_Scale", 1).
		SetFloat("V_Scale", 1).
		SetFloat("U_Offset", 0).
		SetFloat("V_Offset", 0)
}

// quietOptions returns options with a discarding logger.
func quietOptions() *ConvertOptions {
	return &ConvertOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// logBuffer is a concurrency-safe log sink.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) count(msg string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), msg)
}

// capturedOptions returns options logging every level into buf.
func capturedOptions(buf *logBuffer) *ConvertOptions {
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &ConvertOptions{Logger: slog.New(h)}
}

// mustConvert converts src and fails the test on error.
func mustConvert(t *testing.T, src SourceMaterial, opt *ConvertOptions) *Material {
	t.Helper()
	m, err := Convert(src, opt)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return m
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
