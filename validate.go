package remat

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Path to the affected resource
}

// Validate validates a translated material and returns issues.
func Validate(m *Material, opt *ValidateOptions) []Issue {
	if m == nil {
		return nil
	}
	vopt := opt.normalize()
	var out []Issue

	refs := m.channelRefs()
	for _, ch := range slices.Sorted(maps.Keys(refs)) {
		for _, r := range refs[ch] {
			if r.Valid() && m.Nodes[string(r)] == nil {
				out = append(out, Issue{Level: IssueError, Code: "dangling_ref", Message: "channel references an unknown texture", Path: ch + ": " + string(r)})
			}
		}
	}

	resolver := PathResolver{TextureRoot: vopt.TextureRoot}
	for _, id := range slices.Sorted(maps.Keys(m.Nodes)) {
		tex := m.Nodes[id]
		if tex == nil {
			out = append(out, Issue{Level: IssueError, Code: "empty_texture", Message: "empty texture entry", Path: id})
			continue
		}
		if tex.Kind.Code() == 0 {
			out = append(out, Issue{Level: IssueWarning, Code: "unknown_kind", Message: "unknown texture kind", Path: id + ": " + string(tex.Kind)})
		}
		for _, r := range tex.Refs() {
			if m.Nodes[string(r)] == nil {
				out = append(out, Issue{Level: IssueError, Code: "dangling_ref", Message: "texture references an unknown texture", Path: id + ": " + string(r)})
			}
		}

		if tex.ImageMap != nil {
			out = append(out, validateImage(tex.ImageMap.FileName, resolver, vopt)...)
		}
	}

	out = append(out, validateUnit("uRoughness", m.URoughness)...)
	out = append(out, validateUnit("vRoughness", m.VRoughness)...)
	out = append(out, validateUnit("alpha", m.Alpha.Strength)...)

	return out
}

// validateImage validates the file name of an image map.
func validateImage(name string, resolver PathResolver, vopt ValidateOptions) []Issue {
	var out []Issue
	if name == "" {
		return []Issue{{Level: IssueError, Code: "missing_file_name", Message: "image map without file name"}}
	}

	if !vopt.DisableExtensionsCheck && !hasAllowedExt(name) {
		out = append(out, Issue{Level: IssueWarning, Code: "bad_extension", Message: "unexpected image extension", Path: name})
	}

	if strings.Contains(name, "..") {
		out = append(out, Issue{Level: IssueWarning, Code: "parent_path", Message: "image path contains '..'", Path: name})
	}

	if vopt.DisableFileCheck || shouldExcludePath(name, vopt.ExcludePaths) {
		return out
	}
	if p := resolver.ResolvePath(name); p != "" {
		if _, err := os.Stat(p); err != nil {
			out = append(out, Issue{Level: IssueWarning, Code: "missing_resource", Message: "image file not found", Path: p})
		} else if !matchesImage(p) {
			out = append(out, Issue{Level: IssueWarning, Code: "bad_content", Message: "image file content is not an image", Path: p})
		}
	}

	return out
}

// validateUnit checks that a value lies in [0, 1].
func validateUnit(name string, v float64) []Issue {
	if v != Clamp01(v) {
		return []Issue{{Level: IssueWarning, Code: "out_of_range", Message: "value outside [0, 1]", Path: name}}
	}
	return nil
}

// defaultImageExts are the image formats the renderer loads.
var defaultImageExts = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".tga", ".bmp", ".exr", ".hdr"}

// hasAllowedExt checks if the path has an allowed extension.
func hasAllowedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(normalizeOSPath(path)))
	return slices.Contains(defaultImageExts, ext)
}

// matchesImage sniffs the file header. Extensions without a known signature
// always match.
func matchesImage(p string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	if !filetype.IsSupported(ext) {
		return true
	}
	kind, err := filetype.MatchFile(p)
	if err != nil {
		return false
	}
	return kind.MIME.Type == "image"
}

// shouldExcludePath checks if the path should be excluded.
func shouldExcludePath(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	// Normalize the path for matching
	norm := normalizePathForMatch(path)
	for _, p := range patterns {
		if p == "" {
			continue
		}

		pp := normalizePathForMatch(p)
		if prefix, ok := strings.CutSuffix(pp, "*"); ok {
			if strings.HasPrefix(norm, prefix) {
				return true
			}
			continue
		}

		if norm == pp {
			return true
		}
	}

	return false
}

// normalizePathForMatch normalizes a path for matching. Host colon paths,
// backslashes and slashes all compare equal.
func normalizePathForMatch(p string) string {
	p = strings.TrimSpace(p)
	p = strings.NewReplacer("\\", "/", ":", "/").Replace(p)
	return strings.ToLower(p)
}

// PathResolver resolves image paths relative to TextureRoot.
type PathResolver struct {
	TextureRoot string
}

// ResolvePath resolves a raw host path against TextureRoot. Host library
// paths such as ":Runtime:textures:skin.jpg" are relative to the root.
func (r PathResolver) ResolvePath(raw string) string {
	if raw == "" {
		return ""
	}

	norm := normalizeOSPath(raw)
	if filepath.IsAbs(norm) || hasVolume(norm) {
		return filepath.Clean(norm)
	}

	if r.TextureRoot == "" {
		return filepath.Clean(norm)
	}

	return filepath.Clean(filepath.Join(r.TextureRoot, norm))
}

// hasVolume checks if the path starts with a drive letter.
func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}

// normalizeOSPath converts host colon paths and backslashes to OS separators.
func normalizeOSPath(p string) string {
	if rest, ok := strings.CutPrefix(p, ":"); ok {
		p = strings.ReplaceAll(rest, ":", "/")
	}
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.FromSlash(p)
}
