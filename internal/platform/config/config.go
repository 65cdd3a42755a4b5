package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	BackendInProcess = "inprocess"
	BackendPlugin    = "plugin"

	fileName = "config.yaml"
)

type Config struct {
	DataDir string `yaml:"-"`

	DBPath     string `yaml:"db_path" env:"FOCUS_DB_PATH"`
	StatePath  string `yaml:"state_path" env:"FOCUS_STATE_PATH"`
	LogPath    string `yaml:"log_path" env:"FOCUS_LOG_PATH"`
	LogLevel   string `yaml:"log_level" env:"FOCUS_LOG_LEVEL"`
	JournalDir string `yaml:"journal_dir" env:"FOCUS_JOURNAL_DIR"`

	DefaultDuration string   `yaml:"default_duration" env:"FOCUS_DEFAULT_DURATION"`
	CueCommand      []string `yaml:"cue_command" env:"FOCUS_CUE_COMMAND" envSeparator:" "`

	Backend  BackendConfig  `yaml:"backend"`
	Blocking BlockingConfig `yaml:"blocking"`
}

type BackendConfig struct {
	Mode   string `yaml:"mode" env:"FOCUS_BACKEND_MODE"`
	Binary string `yaml:"binary" env:"FOCUS_BACKEND_BINARY"`
	SHA256 string `yaml:"sha256" env:"FOCUS_BACKEND_SHA256"`
}

type BlockingConfig struct {
	HostsFile       string        `yaml:"hosts_file" env:"FOCUS_HOSTS_FILE"`
	Privileged      bool          `yaml:"privileged" env:"FOCUS_PRIVILEGED"`
	SudoersFile     string        `yaml:"sudoers_file" env:"FOCUS_SUDOERS_FILE"`
	ProcRoot        string        `yaml:"proc_root" env:"FOCUS_PROC_ROOT"`
	ApplicationDirs []string      `yaml:"application_dirs" env:"FOCUS_APPLICATION_DIRS" envSeparator:":"`
	PollInterval    time.Duration `yaml:"poll_interval" env:"FOCUS_POLL_INTERVAL"`
	Notify          bool          `yaml:"notify" env:"FOCUS_NOTIFY"`
}

// New resolves configuration for dataDir: defaults, then config.yaml in
// dataDir when present, then FOCUS_* environment variables. An empty
// dataDir falls back to FOCUS_DATA_DIR, then the user config dir.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = os.Getenv("FOCUS_DATA_DIR")
	}
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(base, "focus")
	}
	cfg := Defaults(dataDir)

	payload, err := os.ReadFile(filepath.Join(dataDir, fileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", fileName, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read %s: %w", fileName, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults(dataDir string) Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "focus.db"),
		StatePath:       filepath.Join(dataDir, "state.yaml"),
		LogPath:         filepath.Join(dataDir, "focus.log"),
		LogLevel:        "info",
		JournalDir:      filepath.Join(dataDir, "journal"),
		DefaultDuration: "1 hour",
		Backend: BackendConfig{
			Mode: BackendInProcess,
		},
		Blocking: BlockingConfig{
			HostsFile:   "/etc/hosts",
			Privileged:  true,
			SudoersFile: "/etc/sudoers.d/focus",
			ProcRoot:    "/proc",
			ApplicationDirs: []string{
				"/usr/share/applications",
				"/usr/local/share/applications",
				filepath.Join(home, ".local", "share", "applications"),
				"/var/lib/flatpak/exports/share/applications",
				filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"),
			},
			PollInterval: 500 * time.Millisecond,
			Notify:       true,
		},
	}
}

func (c Config) Validate() error {
	switch c.Backend.Mode {
	case BackendInProcess:
	case BackendPlugin:
		if c.Backend.Binary == "" {
			return fmt.Errorf("backend binary is required in plugin mode")
		}
	default:
		return fmt.Errorf("unknown backend mode %q", c.Backend.Mode)
	}
	if c.Blocking.HostsFile == "" {
		return fmt.Errorf("hosts file path is required")
	}
	if c.Blocking.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}
