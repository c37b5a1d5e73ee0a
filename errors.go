package remat

import "errors"

var (
	// ErrLex indicates a lexer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a parser failure.
	ErrParse = errors.New("parse error")

	// ErrMissingInput indicates a node lacks an input the translator expects.
	ErrMissingInput = errors.New("missing node input")

	// ErrCycle indicates a node was reached again while it was still being translated.
	ErrCycle = errors.New("shader tree cycle")

	// ErrDepthExceeded indicates the upstream chain is deeper than ConvertOptions.MaxDepth.
	ErrDepthExceeded = errors.New("shader tree too deep")

	// ErrHostFailure indicates the host graph failed while being read.
	ErrHostFailure = errors.New("host graph failure")

	// ErrNoRootNode indicates a material has no surface or light root node.
	ErrNoRootNode = errors.New("material has no root node")
)
