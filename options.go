package remat

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultMaxDepth bounds the upstream chain walked from a single channel.
const DefaultMaxDepth = 64

// ConvertOptions controls material conversion.
type ConvertOptions struct {
	// Logger receives conversion diagnostics. Defaults to slog.Default() with component=remat.
	Logger *slog.Logger
	// MaxDepth bounds the upstream chain walked from a channel (default DefaultMaxDepth).
	MaxDepth int
}

// ParseOptions controls shader tree parsing.
type ParseOptions struct {
	// DisableComments disables // and /* */ comments.
	DisableComments bool
}

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatOptions controls record encoding.
type FormatOptions struct {
	// Format is FormatYAML (default) or FormatJSON.
	Format string
	// Indent is the number of spaces per nesting level (default 2).
	Indent int
}

// ValidateOptions controls validation rules.
type ValidateOptions struct {
	// TextureRoot is used to resolve image paths when file checks are enabled.
	// Host paths such as ":Runtime:textures:skin.jpg" resolve under it.
	TextureRoot string
	// ExcludePaths skips file existence checks for matching image paths.
	// Supports exact match and prefix wildcard with '*' suffix (e.g. ":Runtime:textures:*").
	ExcludePaths []string
	// DisableFileCheck disables filesystem existence checks for image paths.
	// If TextureRoot is not set, this is enabled by default.
	DisableFileCheck bool
	// DisableExtensionsCheck disables extension validation for image paths.
	DisableExtensionsCheck bool
}

// IsTextureRootExist reports whether the texture root exists and is a directory.
func (o *ValidateOptions) IsTextureRootExist() bool {
	if o == nil {
		return false
	}
	if strings.TrimSpace(o.TextureRoot) == "" {
		return false
	}
	info, err := os.Stat(o.TextureRoot)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// normalize normalizes the ConvertOptions.
func (o *ConvertOptions) normalize() ConvertOptions {
	var out ConvertOptions
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = slog.Default().With(slog.String("component", "remat"))
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}

	return out
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{}
	}

	return *o
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Format: FormatYAML, Indent: 2}
	}

	out := *o
	out.Format = strings.ToLower(strings.TrimSpace(out.Format))
	if out.Format == "" {
		out.Format = FormatYAML
	}
	if out.Indent <= 0 {
		out.Indent = 2
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{DisableFileCheck: true}
	}

	out := *o
	if out.TextureRoot == "" {
		out.DisableFileCheck = true
	}

	return out
}
