package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"flowedit/diagram"
	"flowedit/export"
	"flowedit/importer"
	"flowedit/markdown"
	"flowedit/server"
	"flowedit/terminal"
)

func main() {
	// Define command line flags
	var (
		interactive = flag.Bool("i", false, "Interactive editor (default when no file is given)")
		watch       = flag.Bool("watch", true, "Reload the file when it changes on disk (interactive mode)")
		help        = flag.Bool("help", false, "Show help")

		// Export flags
		format     = flag.String("format", "", "Export format: json, svg, png, ascii, mermaid, report (default: from -o, else ascii)")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		waypoints  = flag.Bool("waypoints", false, "Show waypoints and handles in ASCII output")

		// Import flags
		inputFormat = flag.String("input-format", "", "Input format: json, mermaid, markdown (default: from the file extension, else detected)")
		block       = flag.Int("block", 0, "Markdown code block to read or replace, counting from 1 (default: the only one)")

		// Service flags
		serve = flag.String("serve", "", "Serve the routing API on this address, e.g. :8080")

		logFile = flag.String("log", "", "Write logs to this file")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes and edits the edges of flow diagrams.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                              # Start the editor on a new diagram\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i flow.json                 # Edit flow.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s flow.json                    # Draw flow.json to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o flow.svg flow.json        # Export as SVG\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format report flow.json     # List edges and their routes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o flow.png flow.mmd         # Lay out a Mermaid flowchart as PNG\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -block 2 README.md           # Draw the second diagram block of README.md\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o README.md flow.mmd        # Replace the diagram block in README.md\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve :8080                 # Run the routing API\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nInteractive Mode:\n")
		fmt.Fprintf(os.Stderr, "  drag an edge to add a waypoint, double-click to insert or delete one\n")
		fmt.Fprintf(os.Stderr, "  1-9 add a node   c connect   l edit label   m cycle routing mode\n")
		fmt.Fprintf(os.Stderr, "  y copy path      ctrl+s save ctrl+z undo    ctrl+y redo   q quit\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	var filename string
	if len(args) > 0 {
		filename = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The editor owns the terminal, so it only logs to a file
	logger, closeLog, err := newLogger(*logFile, *serve != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	switch {
	case *serve != "":
		logger.Info("serving", "addr", *serve)
		err = server.ListenAndServe(ctx, *serve, server.Config{Logger: logger})
	case *interactive || filename == "":
		err = runInteractive(ctx, filename, *inputFormat, *block, *watch, logger)
	default:
		err = runExport(filename, *inputFormat, *block, *format, *outputFile, *waypoints)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger opens the log file, or logs to stderr when toStderr is set and
// no file is given. Otherwise logs are discarded.
func newLogger(path string, toStderr bool) (*slog.Logger, func(), error) {
	if path == "" {
		if toStderr {
			return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
		}
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

// runInteractive opens the full-screen editor. A file that does not exist
// yet starts an empty diagram that is created on the first save. Imported
// files are saved next to the original as JSON.
func runInteractive(ctx context.Context, filename, inputFormat string, block int, watch bool, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive mode needs a terminal")
	}

	d := &diagram.Diagram{}
	savePath := filename
	if filename != "" {
		loaded, imported, err := loadDiagram(filename, inputFormat, block)
		switch {
		case err == nil:
			d = loaded
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("new diagram", "path", filename)
		default:
			return err
		}
		if imported {
			savePath = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
			watch = false
			logger.Info("imported", "path", filename, "save_to", savePath)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	app, err := terminal.New(screen, d, terminal.Config{
		Path:   savePath,
		Watch:  watch && savePath != "",
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadDiagram reads a diagram file, importing it when it is not a JSON
// document. It reports whether an importer other than JSON was used.
func loadDiagram(filename, inputFormat string, block int) (*diagram.Diagram, bool, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("reading file: %w", err)
	}

	registry := importer.NewImporterRegistry()
	registry.Register(importer.NewMarkdownImporter(block))
	var imp importer.Importer
	if inputFormat != "" {
		d, err := registry.ImportWithFormat(string(data), inputFormat)
		if err != nil {
			return nil, false, fmt.Errorf("importing %s: %w", filename, err)
		}
		return d, !strings.EqualFold(inputFormat, "json"), nil
	}
	if found, ok := registry.ForPath(filename); ok {
		imp = found
	} else if imp, err = registry.DetectFormat(string(data)); err != nil {
		return nil, false, fmt.Errorf("%s: %w", filename, err)
	}

	d, err := imp.Import(string(data))
	if err != nil {
		return nil, false, fmt.Errorf("importing %s: %w", filename, err)
	}
	_, isJSON := imp.(*importer.JSONImporter)
	return d, !isJSON, nil
}

// runExport renders a diagram file in one format.
func runExport(filename, inputFormat string, block int, format, outputFile string, waypoints bool) error {
	d, _, err := loadDiagram(filename, inputFormat, block)
	if err != nil {
		return err
	}
	if importer.IsMarkdownPath(outputFile) {
		return updateMarkdown(d, outputFile, block, format)
	}

	f, err := resolveFormat(format, outputFile)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, export.GetAvailableFormats())
	}

	var exporter export.Exporter
	if f == export.FormatASCII {
		exporter = &export.ASCIIExporter{
			Color:     outputFile == "" && term.IsTerminal(int(os.Stdout.Fd())),
			Waypoints: waypoints,
		}
	} else {
		exporter, err = export.NewExporter(f)
		if err != nil {
			return err
		}
	}

	data, err := exporter.Export(d)
	if err != nil {
		return fmt.Errorf("exporting diagram: %w", err)
	}

	if outputFile == "" {
		if f == export.FormatPNG && term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PNG to a terminal, use -o")
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %s to %s\n", exporter.GetFormatName(), outputFile)
	return nil
}

// resolveFormat picks the export format: the flag wins, then the output
// file's extension, then ASCII.
func resolveFormat(format, outputFile string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if f, ok := export.FormatForPath(outputFile); ok {
		return f, nil
	}
	return export.FormatASCII, nil
}

// updateMarkdown writes the diagram into a code block of an existing
// Markdown file, in the block's own language.
func updateMarkdown(d *diagram.Diagram, path string, block int, format string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	scanner := markdown.NewScanner(string(content))
	target, err := scanner.Block(block)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := export.ParseFormat(target.Type)
	if err != nil {
		return err
	}
	if format != "" && !strings.EqualFold(format, target.Type) {
		return fmt.Errorf("block at line %d is %s, not %s", target.StartLine+1, target.Type, format)
	}
	exporter, err := export.NewExporter(f)
	if err != nil {
		return err
	}
	data, err := exporter.Export(d)
	if err != nil {
		return fmt.Errorf("exporting diagram: %w", err)
	}

	updated, err := scanner.ReplaceBlock(target, string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Updated %s block at line %d of %s\n", target.Type, target.StartLine+1, path)
	return nil
}
