package main

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/woozymasta/remat"
)

// minSuggestScore is the similarity below which no keyword is suggested.
const minSuggestScore = 0.5

var nodesFlags struct {
	markdown bool
}

var nodesCmd = &cobra.Command{
	Use:   "nodes [keyword]",
	Short: "List the shader tree node kinds and how each is translated",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNodes,
}

func init() {
	nodesCmd.Flags().BoolVar(&nodesFlags.markdown, "markdown", false, "Render the table as Markdown")
}

func runNodes(cmd *cobra.Command, args []string) error {
	types := remat.NodeTypes()
	if len(args) == 1 {
		t, err := lookupNodeType(args[0])
		if err != nil {
			return err
		}
		types = []remat.NodeType{t}
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Keyword", "Role"})
	for _, t := range types {
		tw.AppendRow(table.Row{t.String(), string(t.Role())})
	}
	if nodesFlags.markdown {
		tw.RenderMarkdown()
	} else {
		tw.SetStyle(table.StyleLight)
		tw.Render()
	}

	return nil
}

// lookupNodeType resolves a keyword, suggesting the closest one on a miss.
func lookupNodeType(keyword string) (remat.NodeType, error) {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if t := remat.ParseNodeType(k); t != remat.NodeTypeUnknown || k == remat.NodeTypeUnknown.String() {
		return t, nil
	}

	if s := suggestKeyword(k); s != "" {
		return remat.NodeTypeUnknown, fmt.Errorf("unknown node keyword %q, did you mean %q?", keyword, s)
	}
	return remat.NodeTypeUnknown, fmt.Errorf("unknown node keyword %q", keyword)
}

// suggestKeyword returns the known keyword closest to k, or "".
func suggestKeyword(k string) string {
	lev := metrics.NewLevenshtein()
	best, score := "", minSuggestScore
	for _, t := range remat.NodeTypes() {
		if s := strutil.Similarity(k, t.String(), lev); s >= score {
			best, score = t.String(), s
		}
	}
	return best
}
