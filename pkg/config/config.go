package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultDir = "./configs"
)

var (
	DefaultManifest = []string{
		"/",
		"/index.html",
		"/style.css",
		"/app.js",
		"/manifest.json",
		"/icons/icon-192.png",
		"/icons/icon-512.png",
	}

	DefaultReaders = []string{"ean_13", "ean_8", "upc_a", "code_128"}
)

type (
	Server struct {
		Port   int    `mapstructure:"PORT"`
		Ledger Ledger `mapstructure:"LEDGER"`
		Assets Assets `mapstructure:"ASSETS"`
	}

	Terminal struct {
		Ledger   Ledger   `mapstructure:"LEDGER"`
		Scanner  Scanner  `mapstructure:"SCANNER"`
		Importer Importer `mapstructure:"IMPORTER"`
	}

	Ledger struct {
		// StorageKey - name of the single storage item holding the serialized mapping
		StorageKey string  `mapstructure:"STORAGE_KEY"`
		Storage    Storage `mapstructure:"STORAGE"`
	}

	Assets struct {
		// Generation - name of the current cache generation, changing it drops every older cache
		Generation   string        `mapstructure:"GENERATION"`
		Manifest     []string      `mapstructure:"MANIFEST"`
		OriginURL    string        `mapstructure:"ORIGIN_URL"`
		FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`
		Storage      Storage       `mapstructure:"STORAGE"`
	}

	Scanner struct {
		Target     string   `mapstructure:"TARGET"`
		FacingMode string   `mapstructure:"FACING_MODE"`
		Workers    int      `mapstructure:"WORKERS"`
		Readers    []string `mapstructure:"READERS"`
	}

	Importer struct {
		// Workers - number of files parsed in parallel
		Workers int `mapstructure:"WORKERS"`
	}

	Storage struct {
		Type           string `mapstructure:"TYPE"`
		DSN            string `mapstructure:"DSN"`
		MaxConnections int    `mapstructure:"MAX_CONNECTIONS"`
	}
)

func newViper(dir string, name string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	return v
}

func setLedgerDefaults(v *viper.Viper) {
	v.SetDefault("LEDGER.STORAGE_KEY", "prices")
	v.SetDefault("LEDGER.STORAGE.TYPE", "file")
	v.SetDefault("LEDGER.STORAGE.DSN", "./data/local_storage.json")
	v.SetDefault("LEDGER.STORAGE.MAX_CONNECTIONS", 1)
}

func (cfg *Server) LoadConfig(dir string, name string) (*Server, error) {
	v := newViper(dir, name)
	v.SetDefault("PORT", 8080)
	setLedgerDefaults(v)
	v.SetDefault("ASSETS.GENERATION", "pricescan-v1")
	v.SetDefault("ASSETS.MANIFEST", DefaultManifest)
	v.SetDefault("ASSETS.ORIGIN_URL", "")
	v.SetDefault("ASSETS.FETCH_TIMEOUT", 10*time.Second)
	v.SetDefault("ASSETS.STORAGE.TYPE", "memory")
	v.SetDefault("ASSETS.STORAGE.DSN", "")

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("can't read config for Server from=%s: %w", name, err)
	}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't unmarshall config for Server from=%s: %w", name, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for Server from=%s: %w", name, err)
	}

	return cfg, nil
}

func (cfg *Server) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port=%d is out of range", cfg.Port)
	}
	if err := cfg.Ledger.Validate(); err != nil {
		return err
	}
	return cfg.Assets.Validate()
}

func (cfg *Terminal) LoadConfig(dir string, name string) (*Terminal, error) {
	v := newViper(dir, name)
	setLedgerDefaults(v)
	v.SetDefault("SCANNER.TARGET", "camera")
	v.SetDefault("SCANNER.FACING_MODE", "environment")
	v.SetDefault("SCANNER.WORKERS", 2)
	v.SetDefault("SCANNER.READERS", DefaultReaders)
	v.SetDefault("IMPORTER.WORKERS", 2)

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("can't read config for Terminal from=%s: %w", name, err)
	}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't unmarshall config for Terminal from=%s: %w", name, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for Terminal from=%s: %w", name, err)
	}

	return cfg, nil
}

func (cfg *Terminal) Validate() error {
	if cfg.Importer.Workers < 1 {
		return fmt.Errorf("importer workers=%d, at least one is required", cfg.Importer.Workers)
	}
	return cfg.Ledger.Validate()
}

func (cfg Ledger) Validate() error {
	if strings.TrimSpace(cfg.StorageKey) == "" {
		return fmt.Errorf("ledger storage key is required")
	}
	if cfg.Storage.Type == "" {
		return fmt.Errorf("ledger storage type is required")
	}
	return nil
}

func (cfg Assets) Validate() error {
	if strings.TrimSpace(cfg.Generation) == "" {
		return fmt.Errorf("assets generation is required")
	}
	if len(cfg.Manifest) == 0 {
		return fmt.Errorf("assets manifest is empty")
	}
	for _, path := range cfg.Manifest {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("assets manifest path=%s must start with /", path)
		}
	}
	return nil
}
