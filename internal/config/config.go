package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	pathutil "github.com/redjax/nbview/internal/utils/path"
	"github.com/spf13/pflag"
)

const EnvPrefix = "NBVIEW_"

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type ImportConfig struct {
	APIBase      string        `koanf:"api_base"`
	Timeout      time.Duration `koanf:"timeout"`
	UserAgent    string        `koanf:"user_agent"`
	PreviewCells int           `koanf:"preview_cells"`
}

type ExecConfig struct {
	Enabled  bool          `koanf:"enabled"`
	MaxSteps uint64        `koanf:"max_steps"`
	Timeout  time.Duration `koanf:"timeout"`
}

type RenderConfig struct {
	Width int `koanf:"width"`
}

type BackupConfig struct {
	Dir  string `koanf:"dir"`
	Keep int    `koanf:"keep"`
}

type Config struct {
	DBPath    string       `koanf:"db_path"`
	Ephemeral bool         `koanf:"ephemeral"`
	Autosave  bool         `koanf:"autosave"`
	Log       LogConfig    `koanf:"log"`
	Import    ImportConfig `koanf:"import"`
	Exec      ExecConfig   `koanf:"exec"`
	Render    RenderConfig `koanf:"render"`
	Backup    BackupConfig `koanf:"backup"`
}

func Default() Config {
	return Config{
		DBPath:   "~/.nbview/nbview.db",
		Autosave: true,
		Log:      LogConfig{Level: "info", Format: "console"},
		Import: ImportConfig{
			APIBase:      "https://api.github.com",
			Timeout:      30 * time.Second,
			UserAgent:    "nbview",
			PreviewCells: 3,
		},
		Exec:   ExecConfig{Enabled: true, MaxSteps: 10_000_000, Timeout: 10 * time.Second},
		Render: RenderConfig{Width: 100},
		Backup: BackupConfig{Dir: "~/.nbview/backups", Keep: 5},
	}
}

// sections are the nested config groups; env keys split once after them
var sections = map[string]bool{"log": true, "import": true, "exec": true, "render": true, "backup": true}

// envKey maps NBVIEW_EXEC_MAX_STEPS to exec.max_steps and NBVIEW_DB_PATH to db_path
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if head, rest, ok := strings.Cut(key, "_"); ok && sections[head] {
		return head + "." + rest
	}
	return key
}

// flagKeys maps global flag names onto config keys
var flagKeys = map[string]string{
	"db":        "db_path",
	"ephemeral": "ephemeral",
	"debug":     "log.level",
}

func flagValue(f *pflag.Flag) (string, interface{}) {
	key, ok := flagKeys[f.Name]
	if !ok || !f.Changed {
		return "", nil
	}
	if f.Name == "debug" {
		if f.Value.String() != "true" {
			return "", nil
		}
		return key, "debug"
	}
	if f.Value.Type() == "bool" {
		return key, f.Value.String() == "true"
	}
	return key, f.Value.String()
}

// LoadConfig layers the config file, NBVIEW_ environment variables and
// command-line flags (highest precedence) over the defaults.
func LoadConfig(flagSet *pflag.FlagSet, configFile string) (Config, error) {
	k := koanf.New(".")

	// Load from config file if provided
	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("unsupported config file format: %w", err)
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return Config{}, fmt.Errorf("error loading config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("error loading environment: %w", err)
	}

	if flagSet != nil {
		if err := k.Load(posflag.ProviderWithFlag(flagSet, ".", k, flagValue), nil); err != nil {
			return Config{}, fmt.Errorf("error loading flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	dbPath, err := pathutil.ExpandPath(cfg.DBPath)
	if err != nil {
		return Config{}, fmt.Errorf("db_path: %w", err)
	}
	cfg.DBPath = dbPath

	backupDir, err := pathutil.ExpandPath(cfg.Backup.Dir)
	if err != nil {
		return Config{}, fmt.Errorf("backup.dir: %w", err)
	}
	cfg.Backup.Dir = backupDir

	return cfg, nil
}

func parserForFile(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.ParserEnv(EnvPrefix, ".", envKey), nil
	default:
		return nil, fmt.Errorf("unknown file extension: %s", ext)
	}
}
