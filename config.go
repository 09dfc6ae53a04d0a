package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/babs/ico2mipmap/internal/raster"
)

// Config holds the converter configuration.
type Config struct {
	ProjectRoot string            `json:"project_root,omitempty"`
	ResDir      string            `json:"res_dir"`
	DirPrefix   string            `json:"dir_prefix"`
	Filter      string            `json:"filter"`
	Sizes       []raster.SizeSpec `json:"sizes"`
	Variants    []Variant         `json:"variants"`
}

// Variant is one icon to convert, typically the light or the dark launcher icon.
type Variant struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Background string `json:"background"`
	Filename   string `json:"filename"`
	Subdir     string `json:"subdir,omitempty"`
}

const (
	defaultFilename = "ic_launcher.png"
	darkSuffix      = "_dark"
)

var configPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configPath = filepath.Join(home, ".config", "ico2mipmap", "config.json")
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		ResDir:    filepath.Join("app", "src", "main", "res"),
		DirPrefix: "mipmap-",
		Filter:    string(raster.DefaultFilter),
		Sizes:     raster.DefaultSizes(),
		Variants: []Variant{
			defaultVariant("light"),
			defaultVariant("dark"),
		},
	}
}

func defaultVariant(name string) Variant {
	if name == "dark" {
		return Variant{Name: "dark", Source: "icon-dark.ico", Background: "black", Filename: themedFilename(defaultFilename, true)}
	}
	return Variant{Name: name, Source: "icon.ico", Background: "white", Filename: defaultFilename}
}

// themedFilename inserts the dark suffix before the extension.
func themedFilename(base string, dark bool) string {
	if !dark {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + darkSuffix + ext
}

// loadConfig loads config from disk, creating a default if it doesn't exist.
// Missing fields keep their defaults via json.Unmarshal into a pre-populated struct.
func loadConfig() Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := saveConfig(cfg); writeErr != nil {
				log.Printf("Failed to write default config: %v", writeErr)
			} else {
				log.Printf("Created default config at %s", configPath)
			}
			return cfg
		}
		log.Printf("Failed to read config %s: %v", configPath, err)
		return cfg
	}

	// json.Unmarshal merges array elements into existing ones, so the slices
	// start empty and are defaulted by validateConfig.
	cfg.Sizes, cfg.Variants = nil, nil
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Failed to parse config %s: %v", configPath, err)
		return defaultConfig()
	}

	validateConfig(&cfg)
	return cfg
}

// validateConfig resets invalid fields to their defaults, logging each one.
// Sizes with a non-positive edge are kept: they are reported as failed outputs.
func validateConfig(cfg *Config) {
	defaults := defaultConfig()
	if cfg.ResDir == "" {
		log.Printf("Empty res_dir in config, using default %q", defaults.ResDir)
		cfg.ResDir = defaults.ResDir
	}
	if !raster.ValidFilterName(cfg.Filter) {
		log.Printf("Unknown filter %q in config, using default %q", cfg.Filter, defaults.Filter)
		cfg.Filter = defaults.Filter
	}
	if len(cfg.Sizes) == 0 {
		if cfg.Sizes != nil {
			log.Printf("Empty sizes in config, using default %s", raster.FormatSizes(defaults.Sizes))
		}
		cfg.Sizes = defaults.Sizes
	}
	for _, s := range cfg.Sizes {
		if err := s.Validate(); err != nil {
			log.Printf("Config size %v will not be rendered: %v", s, err)
		}
	}
	if len(cfg.Variants) == 0 {
		if cfg.Variants != nil {
			log.Printf("Empty variants in config, using default light and dark")
		}
		cfg.Variants = defaults.Variants
	}
	for i := range cfg.Variants {
		v := &cfg.Variants[i]
		if v.Name == "" {
			v.Name = "variant" + strconv.Itoa(i+1)
		}
		def := defaultVariant(v.Name)
		if v.Filename == "" {
			v.Filename = def.Filename
		}
		if v.Background == "" {
			v.Background = def.Background
		} else if _, err := parseColor(v.Background); err != nil {
			log.Printf("Invalid background %q for variant %s, using default %q", v.Background, v.Name, def.Background)
			v.Background = def.Background
		}
	}
}

// saveConfig writes config to disk, creating parent dirs.
func saveConfig(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeConfigFile(configPath, append(data, '\n'))
}

// writeConfigFile writes data to path with 0644 permissions, creating parent dirs.
func writeConfigFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// variant returns the variant called name, or nil.
func (c *Config) variant(name string) *Variant {
	for i := range c.Variants {
		if c.Variants[i].Name == name {
			return &c.Variants[i]
		}
	}
	return nil
}

// path resolves p against the project root.
func (c *Config) path(p string) string {
	if c.ProjectRoot == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}

// resolver lays out v's outputs as <res_dir>[/<subdir>]/<prefix><label>/<filename>.
func (c *Config) resolver(v Variant) raster.Resolver {
	root := c.path(c.ResDir)
	if v.Subdir != "" {
		root = filepath.Join(root, v.Subdir)
	}
	return raster.DensityDirs(root, c.DirPrefix, v.Filename)
}

var namedColors = map[string]color.RGBA{
	"white": {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black": {A: 0xff},
}

// parseColor accepts "white", "black", "#rgb" and "#rrggbb".
func parseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("parse color %q: want #rrggbb, white or black", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
