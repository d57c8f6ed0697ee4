package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mdsafe/core"
	"github.com/gaurav-prasanna/mdsafe/core/fetch"
	"github.com/gaurav-prasanna/mdsafe/core/output"
	"github.com/gaurav-prasanna/mdsafe/core/render"
	"github.com/gaurav-prasanna/mdsafe/logging"
)

// renderFlags holds the output selection of the render command.
type renderFlags struct {
	html      bool
	json      bool
	page      bool
	markdown  bool
	pdf       bool
	outputDir string
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <path|-|url>",
		Short: "Render a markdown source to sanitized output",
		Long: `Render runs the same pipeline as the HTTP service on a local file,
standard input ("-") or an http(s) URL, and writes the sanitized result.

Examples:
  mdsafe render README.md
  cat notes.md | mdsafe render - --page
  mdsafe render https://example.com/doc.md --json --output_dir ./out
  mdsafe render README.md --pdf --output_dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	// Output format flags (mutually exclusive).
	cmd.Flags().BoolVar(&flags.html, "html", false, "Output the sanitized HTML fragment (default)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output JSON with metadata and outline")
	cmd.Flags().BoolVar(&flags.page, "page", false, "Output a standalone HTML5 page")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Output markdown rebuilt from the sanitized HTML")
	cmd.Flags().BoolVar(&flags.pdf, "pdf", false, "Output PDF (requires --output_dir)")

	cmd.Flags().StringVar(&flags.outputDir, "output_dir", "", "Output directory (default: stdout)")
	return cmd
}

func runRender(cmd *cobra.Command, source string, flags renderFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}

	a, err := getApp(cmd)
	if err != nil {
		return err
	}

	renderer := flags.selectRenderer()

	loader := fetch.NewLoader()
	loader.Stdin = cmd.InOrStdin()

	markdown, err := loader.Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	// stdout carries the document, so the pipeline runs without a logger.
	p := buildPipeline(a.settings, logging.Nop())
	fragment, err := p.Render(markdown)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	meta := core.DocumentMeta{
		Source:     source,
		RenderedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if outline, err := render.ExtractOutline(fragment); err == nil {
		meta.Title = outline.Title()
	}

	data, err := renderer.Render(fragment, meta)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if flags.outputDir == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flags.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Written: %s\n", path)
	return nil
}

// validate checks that at most one output format is chosen and that PDF
// output goes to a directory.
func (f renderFlags) validate() error {
	formatCount := 0
	for _, set := range []bool{f.html, f.json, f.page, f.markdown, f.pdf} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if f.pdf && f.outputDir == "" {
		return fmt.Errorf("--output_dir is required when using --pdf")
	}
	return nil
}

// selectRenderer creates the Renderer chosen by the flags.
func (f renderFlags) selectRenderer() core.Renderer {
	switch {
	case f.json:
		return render.NewJSONRenderer()
	case f.page:
		return render.NewPageRenderer()
	case f.markdown:
		return render.NewMarkdownRenderer()
	case f.pdf:
		return render.NewPDFRenderer()
	default:
		return render.NewHTMLRenderer()
	}
}
