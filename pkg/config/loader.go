package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment variable read as configuration
	EnvPrefix = "PLUCK_"

	// envNestingSeparator separates nested keys in variable names
	envNestingSeparator = "__"

	// DotEnvFile is read from the manifest directory when present
	DotEnvFile = ".env"
)

// ManifestNames are the file names Discover looks for, in order
var ManifestNames = []string{"pluck.toml", ".pluck.toml", "pluck.yaml", "pluck.yml"}

// Discover returns the first manifest found in dir, or "" when there is none
func Discover(dir string) string {
	for _, name := range ManifestNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads configuration from the defaults, the manifest at path (which
// may be empty), a .env file and the environment, then validates it
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Manifest
	baseDir := ""
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "invalid manifest path %s", path)
		}
		if err := loadManifest(k, abs); err != nil {
			return nil, err
		}
		path = abs
		baseDir = filepath.Dir(abs)
		logger.Debug().Str("path", abs).Msg("Loaded manifest")
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot determine working directory")
		}
		baseDir = wd
	}

	// 3. .env next to the manifest
	if err := loadDotEnv(k, filepath.Join(baseDir, DotEnvFile)); err != nil {
		return nil, err
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.BaseDir = baseDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadManifest(k *koanf.Koanf, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrConfigLoad, "manifest %s is a directory", path).
			WithDetail("path", path)
	}

	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported manifest format %q, use .toml, .yaml or .yml", filepath.Ext(path)).
		WithDetail("path", path)
}

// loadDotEnv layers PLUCK_ variables from a .env file. Variables already
// present in the environment are left to the environment layer.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	values := make(map[string]interface{})
	for name, value := range vars {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		values[envKey(name)] = value
	}
	if len(values) == 0 {
		return nil
	}

	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Int("vars", len(values)).Msg("Loaded .env file")
	return nil
}

// envKey maps PLUCK_SETTINGS__FAIL_FAST to settings.fail_fast
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, envNestingSeparator, ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}
