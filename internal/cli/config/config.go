// Package config loads and validates the CLI configuration by layering
// defaults, an optional config file, LOGANALYZER_* environment variables,
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valed-dm/loganalyzer/internal/cli/render"
	"github.com/valed-dm/loganalyzer/pkg/analyzer"
)

const (
	configName = "loganalyzer"
	envPrefix  = "LOGANALYZER"
)

// Settings is the fully resolved CLI configuration: the analyzer options
// plus the presentation choices that only the CLI layer cares about.
type Settings struct {
	Analyzer     analyzer.Options
	ReportFormat string
	OutputPath   string
	DetectLevels bool
}

// LoadAndValidate assembles the configuration layers, validates the result,
// and expands the positional arguments (files or globs) into the concrete
// path list. It also constructs the run logger, since the logger's level
// depends on the resolved verbose setting. Validation failures wrap
// analyzer.ErrConfigValidation.
func LoadAndValidate(cfgFile, appVersion string, flags *pflag.FlagSet, args []string) (Settings, *slog.Logger, error) {
	v := viper.New()

	v.SetDefault("report", render.FormatHandlers)
	v.SetDefault("output", "")
	v.SetDefault("detectLevels", false)
	v.SetDefault("concurrency", analyzer.DefaultConcurrency)
	v.SetDefault("encodingFallback", analyzer.DefaultEncodingFallback)
	v.SetDefault("fallbackEncoding", analyzer.DefaultFallbackEncoding)
	v.SetDefault("tui", analyzer.DefaultTuiEnabled)
	v.SetDefault("verbose", analyzer.DefaultVerbose)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "loganalyzer"))
			v.AddConfigPath(home)
		}
	}

	usedConfigFile := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Settings{}, nil, fmt.Errorf("%w: reading config file: %v", analyzer.ErrConfigValidation, err)
		}
	} else {
		usedConfigFile = v.ConfigFileUsed()
		if err := ValidateConfigFile(usedConfigFile); err != nil {
			return Settings{}, nil, fmt.Errorf("%w: config file %s: %v", analyzer.ErrConfigValidation, usedConfigFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindFlag(v, flags, "report", "report")
	bindFlag(v, flags, "output", "output")
	bindFlag(v, flags, "detectLevels", "detect-levels")
	bindFlag(v, flags, "concurrency", "concurrency")
	bindFlag(v, flags, "encodingFallback", "encoding-fallback")
	bindFlag(v, flags, "fallbackEncoding", "fallback-encoding")
	bindFlag(v, flags, "verbose", "verbose")

	// --no-tui is the inverse of the stored key, so it cannot be bound
	// directly and is applied only when the user set it.
	if f := flags.Lookup("no-tui"); f != nil && f.Changed {
		noTui, _ := flags.GetBool("no-tui")
		v.Set("tui", !noTui)
	}

	verbose := v.GetBool("verbose")
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)

	if usedConfigFile != "" {
		logger.Debug("loaded configuration file", "path", usedConfigFile)
	}

	paths, err := ExpandPaths(args)
	if err != nil {
		return Settings{}, nil, err
	}
	if len(paths) == 0 {
		return Settings{}, nil, fmt.Errorf("%w: no log files given", analyzer.ErrConfigValidation)
	}

	settings := Settings{
		Analyzer: analyzer.Options{
			Paths:            paths,
			Concurrency:      v.GetInt("concurrency"),
			EncodingFallback: v.GetBool("encodingFallback"),
			FallbackEncoding: v.GetString("fallbackEncoding"),
			Verbose:          verbose,
			TuiEnabled:       v.GetBool("tui"),
			AppVersion:       appVersion,
			ConfigFilePath:   usedConfigFile,
			Logger:           handler,
		},
		ReportFormat: v.GetString("report"),
		OutputPath:   v.GetString("output"),
		DetectLevels: v.GetBool("detectLevels"),
	}

	if settings.DetectLevels {
		settings.ReportFormat = render.FormatLevels
	}

	if err := validate(&settings); err != nil {
		return Settings{}, nil, err
	}
	return settings, logger, nil
}

func validate(s *Settings) error {
	if s.Analyzer.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency cannot be negative (got %d)", analyzer.ErrConfigValidation, s.Analyzer.Concurrency)
	}
	valid := false
	for _, f := range render.Formats {
		if s.ReportFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown report format %q (valid: %s)",
			analyzer.ErrConfigValidation, s.ReportFormat, strings.Join(render.Formats, ", "))
	}
	return nil
}

// ExpandPaths resolves the positional arguments into concrete file paths.
// Arguments containing glob metacharacters are expanded with doublestar
// (supporting ** recursion); a glob matching nothing is a configuration
// error. Literal paths pass through untouched so that a missing file is
// reported per-file by the engine rather than failing the whole run here.
// Duplicates are removed; the result is sorted for deterministic dispatch.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", analyzer.ErrConfigValidation, arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: glob pattern %q matched no files", analyzer.ErrConfigValidation, arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flagName string) {
	if f := flags.Lookup(flagName); f != nil {
		_ = v.BindPFlag(key, f)
	}
}
