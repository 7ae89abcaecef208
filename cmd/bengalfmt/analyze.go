package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bengalssg/bengal/pkg/analysis"
	"github.com/bengalssg/bengal/pkg/markdown"
	"github.com/bengalssg/bengal/pkg/transform"
)

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	var topSections int

	cmd := &cobra.Command{
		Use:   "analyze <file.md> [more.md...]",
		Short: "Run the content-intelligence analyzer over a set of pages and print a JSON report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(flags, args, topSections)
		},
	}
	cmd.Flags().IntVar(&topSections, "top-sections", 5, "number of sections to rank in the prefetch-eagerness recommendation")
	return cmd
}

func runAnalyze(flags *globalFlags, paths []string, topSections int) error {
	log, closer := newLogger(flags)
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	parser, diags, err := markdown.New(cfg.Config)
	if err != nil {
		return fmt.Errorf("constructing parser: %w", err)
	}
	logDiagnostics(log, "startup", diags)

	pages := make([]analysis.Page, 0, len(paths))
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		root, diags, err := parser.ParseToAST(source, markdown.Metadata{SourcePath: path})
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		logDiagnostics(log, path, diags)

		root = transform.NormalizeMDLinks(root)
		html, err := parser.RenderAST(root)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}

		pages = append(pages, analysis.Page{
			Path:    path,
			Section: topLevelSection(path),
			Root:    root,
			HTML:    html,
		})
	}

	opts := analysis.DefaultOptions()
	opts.TopSections = topSections
	report := analysis.Analyze(pages, opts)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// topLevelSection derives a page's section from its first path segment,
// since this command has no site-graph access to a declared section.
func topLevelSection(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	clean = strings.TrimPrefix(clean, "./")
	parts := strings.SplitN(clean, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
