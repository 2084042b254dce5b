package config

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds deployment-wide settings shared by the provision binaries.
type Config struct {
	// Defaults maps an installer kind to the option layer merged under
	// every package of that kind.
	Defaults map[string]map[string]string `yaml:"defaults"`
	// Shell runs each delivered command as `<shell> -c <command>`.
	Shell string `yaml:"shell"`
	// LockFile marks a delivery in progress to avoid parallel runs.
	LockFile string `yaml:"lock_file"`
	// RunsFile is the path to the YAML file storing delivery records.
	RunsFile string `yaml:"runs_file"`
	// ServerAddress is the gRPC sequence service address.
	ServerAddress string `yaml:"server_addr,omitempty"`
	// Timeout is the duration for RPC calls.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for deployment settings.
	DefaultConfigFilename = "provision.yaml"

	// DefaultManifestFilename is the default filename for package declarations.
	DefaultManifestFilename = "packages.yaml"

	// DefaultRunsFilename is the default filename for delivery records.
	DefaultRunsFilename = "provision-runs.yaml"

	// DefaultLockFilename marks a delivery in progress.
	DefaultLockFilename = "provision.lock"

	// DefaultShell runs delivered commands.
	DefaultShell = "/bin/sh"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEmptyInstallerKind is returned when a defaults section has no kind.
	errEmptyInstallerKind = errors.New("defaults section with empty installer kind")
)

// Default returns settings with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file at the default path yields Default.
func Load(path string) (*Config, error) {
	usingDefault := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for optional fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	for kind := range settings.Defaults {
		if kind == "" {
			return errEmptyInstallerKind
		}
	}

	if settings.ServerAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
			return fmt.Errorf("invalid server socket: %w", err)
		}
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.Shell == "" {
		settings.Shell = DefaultShell
	}

	if settings.LockFile == "" {
		settings.LockFile = DefaultLockFilename
	}

	if settings.RunsFile == "" {
		settings.RunsFile = DefaultRunsFilename
	}

	return nil
}

// DefaultsFor returns a copy of the option layer for an installer kind.
func (c *Config) DefaultsFor(kind string) map[string]string {
	if c == nil {
		return nil
	}

	return maps.Clone(c.Defaults[kind])
}
