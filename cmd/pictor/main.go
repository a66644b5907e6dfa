package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pictor-app/pictor/scene"
	"github.com/pictor-app/pictor/svg"
	"github.com/pkg/browser"
	"github.com/tdewolff/argp"
)

type Import struct {
	Scene  string   `short:"s" default:"" desc:"Scene file to import into"`
	Output string   `short:"o" default:"scene.json" desc:"Output scene file"`
	Width  float64  `short:"w" default:"0" desc:"Target width to resize each graphic to"`
	Height float64  `default:"0" desc:"Target height to resize each graphic to"`
	Union  bool     `short:"u" desc:"Merge the paths of each file into one"`
	Frame  bool     `short:"f" desc:"Add a stroked frame around each graphic"`
	Inputs []string `index:"*" desc:"SVG files"`
}

type Export struct {
	Output string `short:"o" default:"" desc:"Output SVG file, stdout when empty"`
	Minify bool   `short:"m" desc:"Minify the SVG output"`
	Input  string `index:"0" desc:"Input scene file"`
}

type Preview struct {
	Input string `index:"0" desc:"Input scene file"`
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	root := argp.NewCmd(&Import{}, "Pictor vector scene toolkit")
	root.AddCmd(&Import{}, "import", "Import SVG files into a scene")
	root.AddCmd(&Export{}, "export", "Write a scene as an SVG image")
	root.AddCmd(&Preview{}, "preview", "Render a scene and open it in the browser")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Import) Run() error {
	if len(cmd.Inputs) == 0 {
		return argp.ShowUsage
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := scene.NewStore()
	if cmd.Scene != "" {
		if store, err = readScene(cmd.Scene); err != nil {
			return err
		}
	}
	if store.Name == "" {
		store.Name = strings.TrimSuffix(filepath.Base(cmd.Output), filepath.Ext(cmd.Output))
	}

	graphics := []*svg.Graphic{}
	for _, input := range cmd.Inputs {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		g, err := svg.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		g.Name = filepath.Base(input)
		graphics = append(graphics, g)
	}

	imp := svg.NewImporter(store, svg.Options{
		TargetWidth:  cmd.Width,
		TargetHeight: cmd.Height,
		Resize:       0.0 < cmd.Width && 0.0 < cmd.Height,
		Union:        cmd.Union,
		Frame:        cmd.Frame,
		Margin:       cfg.Margin,
		MaxRowWidth:  cfg.MaxRowWidth,
	})
	res := imp.Import(graphics...)
	for _, w := range res.Warnings {
		slog.Warn("skipped", "reason", w)
	}

	if err := writeScene(cmd.Output, store); err != nil {
		return err
	}
	slog.Info("imported", "files", len(cmd.Inputs), "paths", res.Paths, "elements", len(res.IDs), "scene", cmd.Output)
	return nil
}

func (cmd *Export) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	store, err := readScene(cmd.Input)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if cmd.Output != "" && cmd.Output != "-" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if cmd.Minify {
		return svg.WriteDocumentMinified(w, store)
	}
	return svg.WriteDocument(w, store)
}

func (cmd *Preview) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	store, err := readScene(cmd.Input)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "pictor-*.svg")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	if err := svg.WriteDocument(f, store); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("preview", "file", f.Name())
	return browser.OpenFile(f.Name())
}

func readScene(filename string) (*scene.Store, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	doc := &scene.Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene.FromDocument(doc), nil
}

func writeScene(filename string, store *scene.Store) error {
	b, err := json.MarshalIndent(store.Document(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
