package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/debug"
)

// config holds the scenario settings. A TOML file given with -config
// provides the values; flags set on the command line override them.
type config struct {
	Backend  string   `toml:"backend"`
	Frames   int      `toml:"frames"`
	Mistakes bool     `toml:"mistakes"`
	Verbose  bool     `toml:"verbose"`
	Color    string   `toml:"color"`
	Capture  string   `toml:"capture"`
	Ignore   []string `toml:"ignore"`
}

func defaultConfig() config {
	return config{
		Backend:  backend.Noop,
		Frames:   3,
		Mistakes: true,
		Color:    "auto",
	}
}

// loadConfig decodes a TOML file over cfg. Unknown keys are an error.
func loadConfig(path string, cfg *config) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// applyFlags copies the flags set on the command line into cfg.
func applyFlags(fs *flag.FlagSet, cfg *config) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "backend":
			cfg.Backend = v
		case "frames":
			cfg.Frames, err = strconv.Atoi(v)
		case "mistakes":
			cfg.Mistakes, err = strconv.ParseBool(v)
		case "v":
			cfg.Verbose, err = strconv.ParseBool(v)
		case "color":
			cfg.Color = v
		case "capture":
			cfg.Capture = v
		}
	})
	return err
}

// ignored resolves the category names in cfg.Ignore.
func (cfg *config) ignored() ([]debug.Category, error) {
	out := make([]debug.Category, 0, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		c, ok := debug.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown report category %q", name)
		}
		out = append(out, c)
	}
	return out, nil
}
