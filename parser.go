package remat

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxNesting bounds block nesting. Host files nest a handful of levels.
const maxNesting = 128

// Sentinel values the host writes for unset references.
const (
	noNode = "NO_NODE"
	noMap  = "NO_MAP"
)

// Parse parses the shader trees of every material in a host file.
// Materials without a shaderTree block are skipped. Input that is not valid
// UTF-8 is read as Windows-1252, the encoding older host versions write.
func Parse(data []byte, opt *ParseOptions) ([]*ShaderTree, error) {
	if !utf8.Valid(data) {
		dec, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode Windows-1252: %v", ErrLex, err)
		}
		data = dec
	}

	p := newParser(data, opt.normalize())
	entries, err := p.parseEntries(false)
	if err != nil {
		return nil, err
	}

	var out []*ShaderTree
	if err := collectMaterials(entries, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Decode parses the shader trees of every material read from r.
func Decode(r io.Reader, opt *ParseOptions) ([]*ShaderTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opt)
}

// DecodeFile parses the shader trees of every material in a file.
func DecodeFile(path string, opt *ParseOptions) ([]*ShaderTree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, opt)
}

// entry is a keyword line of a host file with its optional block.
//
//	nodeInput "Diffuse_Color"
//	{
//	    value 1 1 1
//	}
type entry struct {
	Key  string  // Keyword, empty for an anonymous block
	Args []token // Arguments on the keyword line
	Body []entry // Block contents
	Line int     // Line of the keyword
	Col  int     // Column of the keyword
}

// arg returns the literal of the i-th argument, or "".
func (e entry) arg(i int) string {
	if i >= len(e.Args) {
		return ""
	}
	return e.Args[i].Lit
}

// parser represents a parser for host files.
type parser struct {
	l   *lexer       // Lexer for the input
	buf token        // Buffered token
	has bool         // Has buffered token
	opt ParseOptions // Options for the parser

	depth int // Open blocks
}

// newParser creates a new parser.
func newParser(src []byte, opt ParseOptions) *parser {
	return &parser{l: newLexer(src, opt), opt: opt}
}

// next returns the next token.
func (p *parser) next() (token, error) {
	if p.has {
		p.has = false
		return p.buf, nil
	}

	return p.l.next()
}

// peek returns the next token without consuming it.
func (p *parser) peek() (token, error) {
	if p.has {
		return p.buf, nil
	}

	tok, err := p.l.next()
	if err != nil {
		return tok, err
	}

	p.buf = tok
	p.has = true
	return tok, nil
}

// parseEntries parses entries until EOF, or until the closing brace of a block.
func (p *parser) parseEntries(inBlock bool) ([]entry, error) {
	var out []entry
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case tokEOF:
			if inBlock {
				return nil, p.errorf(tok, "unexpected end of file, expected '}'")
			}
			return out, nil

		case tokRBrace:
			if !inBlock {
				return nil, p.errorf(tok, "unexpected '}'")
			}
			_, _ = p.next()
			return out, nil

		case tokLBrace:
			// Anonymous block, such as the outermost one of a file.
			_, _ = p.next()
			body, err := p.parseBlock(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, entry{Body: body, Line: tok.Line, Col: tok.Col})

		case tokIdent:
			e, err := p.parseEntry()
			if err != nil {
				return nil, err
			}
			out = append(out, e)

		default:
			return nil, p.errorf(tok, "unexpected %s %q", tok.Type, tok.Lit)
		}
	}
}

// parseBlock parses the body of a block whose '{' was consumed.
func (p *parser) parseBlock(open token) ([]entry, error) {
	if p.depth >= maxNesting {
		return nil, p.errorf(open, "blocks nested deeper than %d", maxNesting)
	}
	p.depth++
	defer func() { p.depth-- }()

	return p.parseEntries(true)
}

// parseEntry parses a keyword, the arguments on its line and its block.
func (p *parser) parseEntry() (entry, error) {
	keyTok, err := p.expect(tokIdent)
	if err != nil {
		return entry{}, err
	}

	e := entry{Key: keyTok.Lit, Line: keyTok.Line, Col: keyTok.Col}
	for {
		tok, err := p.peek()
		if err != nil {
			return entry{}, err
		}
		if tok.Line != keyTok.Line {
			break
		}
		if tok.Type != tokIdent && tok.Type != tokNumber && tok.Type != tokString {
			break
		}

		_, _ = p.next()
		e.Args = append(e.Args, tok)
	}

	// The block may open on the next line.
	tok, err := p.peek()
	if err != nil {
		return entry{}, err
	}
	if tok.Type == tokLBrace {
		_, _ = p.next()
		if e.Body, err = p.parseBlock(tok); err != nil {
			return entry{}, err
		}
	}

	return e, nil
}

// expect expects a token of the given type.
func (p *parser) expect(tt tokenType) (token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, got %s %q", tt, tok.Type, tok.Lit)
	}

	return tok, nil
}

// errorf formats a parse error at the token position.
func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w at %d:%d: %s", ErrParse, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

// collectMaterials finds material blocks holding a shader tree, at any depth.
func collectMaterials(entries []entry, out *[]*ShaderTree) error {
	for _, e := range entries {
		if strings.EqualFold(e.Key, "material") {
			if st, ok := findEntry(e.Body, "shaderTree"); ok {
				tree, err := buildTree(e.arg(0), st.Body)
				if err != nil {
					return err
				}
				*out = append(*out, tree)
				continue
			}
		}

		if err := collectMaterials(e.Body, out); err != nil {
			return err
		}
	}

	return nil
}

// findEntry returns the first entry with the given key.
func findEntry(entries []entry, key string) (entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Key, key) {
			return e, true
		}
	}
	return entry{}, false
}

// buildTree builds a ShaderTree from the body of a shaderTree block.
func buildTree(material string, body []entry) (*ShaderTree, error) {
	tree := NewShaderTree(material)
	for _, e := range body {
		if !strings.EqualFold(e.Key, "node") {
			continue
		}
		if len(e.Args) < 2 {
			return nil, fmt.Errorf("%w at %d:%d: node needs a type and a name", ErrParse, e.Line, e.Col)
		}

		keyword, internal := e.arg(0), e.arg(1)
		n := tree.addNode(ParseNodeType(keyword), keyword, internal)
		for _, ne := range e.Body {
			switch strings.ToLower(ne.Key) {
			case "name":
				if ne.arg(0) != "" {
					n.SetName(ne.arg(0))
				}
			case "nodeinput":
				if err := buildInput(n, ne); err != nil {
					return nil, err
				}
			}
		}
	}

	return tree, nil
}

// buildInput builds a node input from a nodeInput block.
func buildInput(n *TreeNode, e entry) error {
	if len(e.Args) == 0 {
		return fmt.Errorf("%w at %d:%d: nodeInput needs a name", ErrParse, e.Line, e.Col)
	}

	in := n.ensureInput(e.arg(0))
	for _, ie := range e.Body {
		switch strings.ToLower(ie.Key) {
		case "name":
			if ie.arg(0) != "" {
				in.name = ie.arg(0)
			}
		case "value":
			v, err := parseValue(ie)
			if err != nil {
				return err
			}
			// A file entry wins over the placeholder value.
			if in.value.Kind != ValueString {
				in.value = v
			}
		case "node":
			if up := ie.arg(0); up != "" && up != noNode {
				in.upstream = up
			}
		case "file":
			if path := ie.arg(0); path != "" && path != noMap {
				in.value = StringValue(path)
			}
		}
	}

	return nil
}

// parseValue parses a value line: one number is a scalar, three or more a color.
func parseValue(e entry) (Value, error) {
	nums := make([]float64, 0, len(e.Args))
	for _, a := range e.Args {
		if a.Type != tokNumber {
			if a.Type == tokString {
				return StringValue(a.Lit), nil
			}
			return Value{}, fmt.Errorf("%w at %d:%d: expected number, got %q", ErrParse, a.Line, a.Col, a.Lit)
		}
		f, err := strconv.ParseFloat(a.Lit, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w at %d:%d: %v", ErrParse, a.Line, a.Col, err)
		}
		nums = append(nums, f)
	}

	switch {
	case len(nums) == 0:
		return Value{}, nil
	case len(nums) < 3:
		return NumberValue(nums[0]), nil
	default:
		return RGBValue(nums[0], nums[1], nums[2]), nil
	}
}
