package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Stack-Syndicate/ziggle/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyZig             = "zig"
	KeyCargo           = "cargo"
	KeySrcDir          = "src_dir"
	KeyHeaderDir       = "header_dir"
	KeyCrateTypes      = "crate_types"
	KeySkipBuild       = "skip_build"
	KeyZigConstraint   = "zig_constraint"
	KeyCargoConstraint = "cargo_constraint"
)

// Defaults applied when neither the config file nor the environment set a key.
var defaults = map[string]interface{}{
	KeyZig:             "zig",
	KeyCargo:           "cargo",
	KeySrcDir:          "src-zig",
	KeyHeaderDir:       "target/headers",
	KeyCrateTypes:      []string{"cdylib", "rlib", "staticlib"},
	KeySkipBuild:       false,
	KeyZigConstraint:   ">= 0.12.0-0",
	KeyCargoConstraint: ">= 1.62.0",
}

// Settings is the resolved view of the configuration used by the pipeline.
type Settings struct {
	ZigBin          string
	CargoBin        string
	SrcDir          string
	HeaderDir       string
	CrateTypes      []string
	SkipBuild       bool
	ZigConstraint   string
	CargoConstraint string
}

// Dir returns the path to the config directory (~/.ziggle/).
// ZIGGLE_HOME overrides the location.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ziggle/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error. A file that cannot be read or
// parsed is reported, and the defaults and environment still apply.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading config file %s: %w", FilePath(), err)
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognized configuration key.
func IsKnownKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	if key == KeyCrateTypes {
		return strings.Join(splitList(viper.GetStringSlice(key)), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the resolved settings. Load must have been called.
func Current() Settings {
	return Settings{
		ZigBin:          viper.GetString(KeyZig),
		CargoBin:        viper.GetString(KeyCargo),
		SrcDir:          viper.GetString(KeySrcDir),
		HeaderDir:       viper.GetString(KeyHeaderDir),
		CrateTypes:      splitList(viper.GetStringSlice(KeyCrateTypes)),
		SkipBuild:       viper.GetBool(KeySkipBuild),
		ZigConstraint:   viper.GetString(KeyZigConstraint),
		CargoConstraint: viper.GetString(KeyCargoConstraint),
	}
}

// splitList flattens comma-separated entries, since values coming from the
// environment or `config set` arrive as a single "a,b,c" string.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
