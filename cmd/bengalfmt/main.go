// Command bengalfmt is a demonstration CLI over the content-processing
// pipeline: parse Markdown (with directives expanded), run the AST
// transforms, render to HTML, apply the hybrid post-transform fallback, and
// optionally read/write the build cache across runs. It exists to exercise
// the pipeline end to end, the way the teacher's own cmd/gomdlint did for
// its lint pipeline.
package main

import (
	"fmt"
	"os"

	// Blank-imported so their init() functions register with the
	// process-wide registries this command depends on: the two parser
	// engines with pkg/markdown.Register, and every built-in directive
	// class with directive.DefaultRegistry.
	_ "github.com/bengalssg/bengal/pkg/directive/builtins"
	_ "github.com/bengalssg/bengal/pkg/markdown/gmengine"
	_ "github.com/bengalssg/bengal/pkg/markdown/patitas"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
