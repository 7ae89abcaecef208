package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bengalssg/bengal/pkg/ast"
	"github.com/bengalssg/bengal/pkg/cache"
	"github.com/bengalssg/bengal/pkg/diagnostic"
	"github.com/bengalssg/bengal/pkg/logging"
	"github.com/bengalssg/bengal/pkg/markdown"
	"github.com/bengalssg/bengal/pkg/posttransform"
	"github.com/bengalssg/bengal/pkg/transform"
)

// parserVersion is stamped into every cache entry; bumping it when transform
// or renderer output changes invalidates every prior entry, since
// GetParsedContent misses on a different parser version.
const parserVersion = "bengalfmt/1"

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var stdout bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "render <file.md> [more.md...]",
		Short: "Render Markdown files to HTML through the full pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(flags, args, stdout, noCache)
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write rendered HTML to stdout instead of a sibling .html file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the build cache entirely")
	return cmd
}

func runRender(flags *globalFlags, paths []string, stdout, noCache bool) error {
	log, closer := newLogger(flags)
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	baseurl := cfg.BaseURL
	if flags.baseurl != "" {
		baseurl = flags.baseurl
	}

	parser, diags, err := markdown.New(cfg.Config)
	if err != nil {
		return fmt.Errorf("constructing parser: %w", err)
	}
	logDiagnostics(log, "startup", diags)

	recorder := logging.NewRecorder()
	ctx := logging.WithLogger(context.Background(), log)
	log.Debug("run started", "run_id", recorder.RunID, "colored_output", colorEnabled(flags), "terminal_width", terminalWidth(80))

	buildCache := loadBuildCache(cfg, log, noCache)
	defer func() {
		if !noCache {
			if err := buildCache.Save(cachePath(cfg)); err != nil {
				log.Warn("could not save build cache", "err", err)
			}
		}
	}()

	poster := posttransform.NewHybridHTMLTransformer(baseurl, log)

	for _, path := range paths {
		if err := renderOne(ctx, recorder, parser, buildCache, poster, path, baseurl, stdout, noCache); err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
	}

	buildCache.SetLastBuild(buildTimestamp())
	recorder.PrintSummary()
	return nil
}

// buildTimestamp is factored out so the cache's last-build stamp comes from
// one clock read; phase timing in pkg/logging reads the clock separately.
func buildTimestamp() time.Time { return time.Now() }

func cachePath(cfg fileConfig) string {
	return filepath.Join(cfg.CacheDir, "cache.json")
}

func loadBuildCache(cfg fileConfig, log *logging.Logger, noCache bool) *cache.BuildCache {
	if noCache {
		c := cache.New()
		c.SetLogger(log)
		return c
	}
	c := cache.Load(cachePath(cfg), log)
	c.Locking = true
	return c
}

func renderOne(ctx context.Context, recorder *logging.Recorder, parser markdown.Parser, buildCache *cache.BuildCache, poster *posttransform.HybridHTMLTransformer, path, baseurl string, stdout, noCache bool) error {
	_, end := logging.Phase(ctx, "render."+filepath.Base(path), recorder, "path", path)
	defer end()

	metadata := map[string]interface{}{"baseurl": baseurl}

	if !noCache {
		if entry, ok := buildCache.GetParsedContent(path, metadata, "", parserVersion); ok {
			return writeOutput(path, entry.HTML, stdout)
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	root, diags, err := parser.ParseToAST(source, markdown.Metadata{SourcePath: path})
	if err != nil {
		return err
	}
	logDiagnostics(logging.FromContext(ctx), path, diags)

	root = transform.NormalizeMDLinks(root)
	if baseurl != "" {
		root = transform.AddBaseURL(root, baseurl)
	}

	html, err := parser.RenderAST(root)
	if err != nil {
		return err
	}
	html = poster.Transform(html)

	tocItems := tocEntriesToCacheItems(ast.ExtractTOC(root))

	if !noCache {
		if err := buildCache.UpdateFile(path); err != nil {
			logging.FromContext(ctx).Warn("could not fingerprint file for cache", "path", path, "err", err)
		}
		if err := buildCache.StoreParsedContent(path, html, "", tocItems, metadata, "", parserVersion, nil); err != nil {
			logging.FromContext(ctx).Warn("could not store parsed content in cache", "path", path, "err", err)
		}
	}

	return writeOutput(path, html, stdout)
}

func tocEntriesToCacheItems(entries []ast.TOCEntry) []cache.TocItem {
	out := make([]cache.TocItem, len(entries))
	for i, e := range entries {
		out[i] = cache.TocItem{Title: e.Title, Slug: e.ID, Level: e.Level}
	}
	return out
}

func writeOutput(path, html string, stdout bool) error {
	if stdout {
		fmt.Println(html)
		return nil
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	return os.WriteFile(out, []byte(html), 0o644)
}

func logDiagnostics(log *logging.Logger, source string, diags []diagnostic.Diagnostic) {
	for _, d := range diags {
		if d.Severity == diagnostic.SeverityError {
			log.Error(d.Message, "source", d.Source, "at", source, "line", d.Location.Line)
		} else {
			log.Warn(d.Message, "source", d.Source, "at", source, "line", d.Location.Line)
		}
	}
}
