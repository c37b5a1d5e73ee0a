package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/woozymasta/remat"
	"github.com/woozymasta/remat/internal/logging"
)

var convertFlags struct {
	format      string
	outDir      string
	maxDepth    int
	jobs        int
	check       bool
	textureRoot string
	exclude     []string
	watch       bool
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert the materials of Poser files into material records",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.format, "format", "f", remat.FormatYAML, "Output format: yaml or json")
	f.StringVarP(&convertFlags.outDir, "out-dir", "o", "", "Write one record file per material into this directory (default stdout)")
	f.IntVar(&convertFlags.maxDepth, "max-depth", remat.DefaultMaxDepth, "Maximum upstream chain walked from a channel")
	f.IntVarP(&convertFlags.jobs, "jobs", "j", runtime.NumCPU(), "Files converted in parallel")
	f.BoolVar(&convertFlags.check, "check", false, "Validate records and fail on errors")
	f.StringVar(&convertFlags.textureRoot, "texture-root", "", "Poser runtime root used to check image files")
	f.StringSliceVar(&convertFlags.exclude, "exclude", nil, "Image paths to skip in file checks ('*' suffix for prefixes)")
	f.BoolVarP(&convertFlags.watch, "watch", "w", false, "Convert again whenever an input file changes")
}

// fileResult holds the records converted from one input file.
type fileResult struct {
	path      string
	materials []*remat.Material
	issues    [][]remat.Issue
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := logging.New("convert")
	conv := remat.NewConverter(&remat.ConvertOptions{Logger: log, MaxDepth: convertFlags.maxDepth})
	vopt := &remat.ValidateOptions{TextureRoot: convertFlags.textureRoot, ExcludePaths: convertFlags.exclude}
	if vopt.TextureRoot != "" && !vopt.IsTextureRootExist() {
		return fmt.Errorf("texture root %q is not a directory", vopt.TextureRoot)
	}

	jobs := convertFlags.jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]fileResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := convertFile(conv, path, vopt)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeResults(cmd, results); err != nil {
		return err
	}

	err := reportIssues(cmd, results)
	if !convertFlags.watch {
		return err
	}
	if err != nil {
		log.Warn("initial conversion has validation errors", "err", err)
	}

	return watchConvert(cmd, conv, vopt, args, log)
}

// watchConvert converts each input file again after it changes, until interrupted.
func watchConvert(cmd *cobra.Command, conv *remat.Converter, vopt *remat.ValidateOptions, args []string, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	fw, err := newFileWatcher(args, log)
	if err != nil {
		return err
	}
	log.Info("watching for changes", "files", len(args))

	return fw.run(ctx, func(path string) {
		res, err := convertFile(conv, path, vopt)
		if err != nil {
			log.Warn("file not converted", "file", path, "err", err)
			return
		}
		results := []fileResult{res}
		if err := writeResults(cmd, results); err != nil {
			log.Warn("records not written", "file", path, "err", err)
			return
		}
		if err := reportIssues(cmd, results); err != nil {
			log.Warn("validation failed", "file", path)
		}
	})
}

// convertFile decodes a file and converts each of its materials.
func convertFile(conv *remat.Converter, path string, vopt *remat.ValidateOptions) (fileResult, error) {
	trees, err := remat.DecodeFile(path, nil)
	if err != nil {
		return fileResult{}, err
	}

	res := fileResult{path: path}
	for _, tree := range trees {
		m, err := conv.Convert(tree)
		if err != nil {
			// Logged by the converter; a material without root has nothing to write.
			continue
		}
		res.materials = append(res.materials, m)
		if convertFlags.check {
			res.issues = append(res.issues, remat.Validate(m, vopt))
		}
	}
	if len(trees) == 0 {
		logging.New("convert").Warn("no shader trees found", "file", path)
	}

	return res, nil
}

// writeResults writes every record to stdout, or one file per material.
func writeResults(cmd *cobra.Command, results []fileResult) error {
	fopt := &remat.FormatOptions{Format: convertFlags.format}
	if convertFlags.outDir == "" {
		var all []*remat.Material
		for _, r := range results {
			all = append(all, r.materials...)
		}
		return remat.EncodeAll(cmd.OutOrStdout(), all, fopt)
	}

	if err := os.MkdirAll(convertFlags.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	ext := "." + strings.ToLower(convertFlags.format)
	for _, r := range results {
		base := strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
		for _, m := range r.materials {
			out := filepath.Join(convertFlags.outDir, base+"_"+fileSafe(m.Name)+ext)
			if err := remat.EncodeFile(out, m, fopt); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
		}
	}

	return nil
}

// reportIssues prints validation issues and fails when any is an error.
func reportIssues(cmd *cobra.Command, results []fileResult) error {
	if !convertFlags.check {
		return nil
	}

	failed := false
	w := cmd.ErrOrStderr()
	out := termenv.NewOutput(w)
	for _, r := range results {
		for i, issues := range r.issues {
			for _, is := range issues {
				fmt.Fprintf(w, "%s: %s: %s: %s", r.path, r.materials[i].Name, levelLabel(out, is.Level), is.Message)
				if is.Path != "" {
					fmt.Fprintf(w, " (%s)", is.Path)
				}
				fmt.Fprintln(w)
				if is.Level == remat.IssueError {
					failed = true
				}
			}
		}
	}
	if failed {
		return errors.New("validation failed")
	}

	return nil
}

// levelLabel colors an issue level when the output is a terminal.
func levelLabel(out *termenv.Output, level remat.IssueLevel) string {
	color := "3"
	if level == remat.IssueError {
		color = "1"
	}
	return out.String(string(level)).Foreground(out.Color(color)).Bold().String()
}

// stripMarks folds accented letters to their base letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fileSafe replaces characters that are awkward in file names.
func fileSafe(name string) string {
	if name == "" {
		return "material"
	}
	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
