package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"golang.org/x/mod/semver"

	"github.com/babs/ico2mipmap/internal/raster"
)

// Build-time variables injected via ldflags.
var (
	Version        = "v0.0.0"
	CommitHash     = "dev"
	BuildTimestamp = "1970-01-01T00:00:00Z"
	Builder        = "unknown"
	GithubRepo     = "babs/ico2mipmap"
)

func versionString() string {
	v := Version
	if !semver.IsValid(v) {
		v = "v0.0.0-unknown"
	}
	return fmt.Sprintf("ico2mipmap %s-%s", v, CommitHash)
}

func versionStringLong() string {
	return fmt.Sprintf("%s (built %s using %s)\nhttps://github.com/%s\n",
		versionString(), BuildTimestamp, Builder, GithubRepo)
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[ico2mipmap] ")

	showVersion := flag.Bool("version", false, "show version and exit")
	check := flag.Bool("check", false, "only report whether each source icon exists and decodes")
	cfgFile := flag.String("config", "", "config file (default ~/.config/ico2mipmap/config.json)")
	projectRoot := flag.String("project", "", "project root for relative paths (env: ICO2MIPMAP_PROJECT_ROOT)")
	resDir := flag.String("res-dir", "", "Android res directory (env: ICO2MIPMAP_RES_DIR)")
	dirPrefix := flag.String("dir-prefix", "", "density directory prefix, e.g. mipmap- (env: ICO2MIPMAP_DIR_PREFIX)")
	sizes := flag.String("sizes", "", "size table as label:edge,... (env: ICO2MIPMAP_SIZES)")
	filter := flag.String("filter", "", "resampling filter: lanczos3, catmullrom, bilinear, approxbilinear (env: ICO2MIPMAP_FILTER)")
	light := flag.String("light", "", "light icon source (env: ICO2MIPMAP_LIGHT_ICON)")
	dark := flag.String("dark", "", "dark icon source (env: ICO2MIPMAP_DARK_ICON)")
	filename := flag.String("filename", "", "output file name, dark gets a _dark suffix unless -dark-subdir is set (env: ICO2MIPMAP_FILENAME)")
	darkSubdir := flag.String("dark-subdir", "", "write the dark icon under this res subdirectory, e.g. drawable-night (env: ICO2MIPMAP_DARK_SUBDIR)")
	flag.Usage = func() {
		fmt.Print(versionStringLong())
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(versionStringLong())
		return
	}
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *cfgFile != "" {
		configPath = *cfgFile
	}
	cfg := loadConfig()

	applyOverrides(&cfg, overrides{
		ProjectRoot: *projectRoot,
		ResDir:      *resDir,
		DirPrefix:   *dirPrefix,
		Sizes:       *sizes,
		Filter:      *filter,
		LightIcon:   *light,
		DarkIcon:    *dark,
		Filename:    *filename,
		DarkSubdir:  *darkSubdir,
	})

	fmt.Println(versionString())
	fmt.Printf("Config: %s\n", configPath)

	if *check {
		os.Exit(runCheck(os.Stdout, cfg))
	}
	os.Exit(run(os.Stdout, cfg))
}

// overrides holds flag or environment values for config overrides.
// Empty strings mean "not set".
type overrides struct {
	ProjectRoot string `env:"ICO2MIPMAP_PROJECT_ROOT"`
	ResDir      string `env:"ICO2MIPMAP_RES_DIR"`
	DirPrefix   string `env:"ICO2MIPMAP_DIR_PREFIX"`
	Sizes       string `env:"ICO2MIPMAP_SIZES"`
	Filter      string `env:"ICO2MIPMAP_FILTER"`
	LightIcon   string `env:"ICO2MIPMAP_LIGHT_ICON"`
	DarkIcon    string `env:"ICO2MIPMAP_DARK_ICON"`
	Filename    string `env:"ICO2MIPMAP_FILENAME"`
	DarkSubdir  string `env:"ICO2MIPMAP_DARK_SUBDIR"`
}

// applyOverrides applies env vars and flags to config. Priority: flag > env > config file.
func applyOverrides(cfg *Config, flags overrides) {
	var fromEnv overrides
	if err := env.Parse(&fromEnv); err != nil {
		log.Printf("Ignoring environment: %v", err)
		fromEnv = overrides{}
	}
	apply(cfg, fromEnv, "env")
	apply(cfg, flags, "flag")
}

func apply(cfg *Config, o overrides, source string) {
	setString(&cfg.ProjectRoot, o.ProjectRoot)
	setString(&cfg.ResDir, o.ResDir)
	setString(&cfg.DirPrefix, o.DirPrefix)

	if o.Filter != "" {
		if f, err := raster.ParseFilter(o.Filter); err != nil {
			log.Printf("Ignoring invalid %s filter %q", source, o.Filter)
		} else {
			cfg.Filter = string(f)
		}
	}
	if o.Sizes != "" {
		if sizes, err := raster.ParseSizes(o.Sizes); err != nil {
			log.Printf("Ignoring invalid %s sizes %q: %v", source, o.Sizes, err)
		} else {
			cfg.Sizes = sizes
		}
	}

	if o.LightIcon != "" {
		cfg.ensureVariant("light").Source = o.LightIcon
	}
	if o.DarkIcon != "" {
		cfg.ensureVariant("dark").Source = o.DarkIcon
	}
	if o.DarkSubdir != "" {
		d := cfg.ensureVariant("dark")
		d.Subdir = o.DarkSubdir
		if l := cfg.variant("light"); l != nil {
			d.Filename = l.Filename
		}
	}
	if o.Filename != "" {
		for i := range cfg.Variants {
			v := &cfg.Variants[i]
			v.Filename = themedFilename(o.Filename, v.Name == "dark" && v.Subdir == "")
		}
	}
}

func setString(target *string, v string) {
	if v != "" {
		*target = v
	}
}

// ensureVariant returns the variant called name, appending a default one if missing.
func (c *Config) ensureVariant(name string) *Variant {
	if v := c.variant(name); v != nil {
		return v
	}
	c.Variants = append(c.Variants, defaultVariant(name))
	return &c.Variants[len(c.Variants)-1]
}

// run converts every variant and returns the process exit code:
// 0 when every variant was fully converted, 1 otherwise.
func run(w io.Writer, cfg Config) int {
	r := &raster.Rasterizer{Sizes: cfg.Sizes, Filter: raster.Filter(cfg.Filter)}

	var results []variantResult
	for _, v := range cfg.Variants {
		src := cfg.path(v.Source)
		fmt.Fprintf(w, "\n%s: %s\n", v.Name, src)

		bg, err := parseColor(v.Background)
		if err != nil {
			log.Printf("Variant %s: %v, using white", v.Name, err)
			bg = namedColors["white"]
		}
		r.Background = bg

		res, err := r.Rasterize(src, cfg.resolver(v))
		if err != nil {
			log.Printf("Variant %s: %v", v.Name, err)
		}
		for _, line := range formatResult(res) {
			fmt.Fprintln(w, line)
		}
		results = append(results, variantResult{Variant: v, Result: res})
	}

	fmt.Fprintln(w)
	for _, line := range formatSummary(results) {
		fmt.Fprintln(w, line)
	}

	for _, vr := range results {
		if vr.Result.Status() != raster.Converted {
			return 1
		}
	}
	return 0
}

// runCheck reports each variant's source without writing anything.
// Returns 0 when every source exists and decodes.
func runCheck(w io.Writer, cfg Config) int {
	code := 0
	fmt.Fprintln(w)
	for _, v := range cfg.Variants {
		src := cfg.path(v.Source)
		info, err := raster.Probe(src)
		if err != nil {
			code = 1
		}
		fmt.Fprintln(w, formatCheckLine(v.Name, src, info, err))
	}
	return code
}
