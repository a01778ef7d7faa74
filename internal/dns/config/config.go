package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// No-match policies for names that exist in no zone.
const (
	NoMatchNoError  = "noerror"
	NoMatchNXDomain = "nxdomain"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// CacheSize is the number of lookup results kept in memory. Zero disables the cache.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// DefaultTTL applies to zone entries that do not carry their own TTL.
	DefaultTTL uint32 `koanf:"default_ttl" validate:"lte=2147483647"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// Listen is the UDP address the responder binds to, in ip:port form.
	Listen string `koanf:"listen" validate:"required,ip_port"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	NoMatch string `koanf:"no_match" validate:"required,oneof=noerror nxdomain"`

	// SnapshotDB is an optional bbolt file holding the last loaded zone data.
	SnapshotDB string `koanf:"snapshot_db"`

	// ZoneDir is the directory where zone files are located.
	ZoneDir string `koanf:"zone_dir" validate:"required"`
}

// NXDomainOnMiss reports whether unknown names are answered with NXDOMAIN.
func (c *AppConfig) NXDomainOnMiss() bool {
	return c.NoMatch == NoMatchNXDomain
}

// DEFAULT_APP_CONFIG defines the default settings of the responder.
var DEFAULT_APP_CONFIG = AppConfig{
	CacheSize:  1000,
	DefaultTTL: 300,
	Env:        "prod",
	Listen:     "127.0.0.1:2053",
	LogLevel:   "info",
	NoMatch:    NoMatchNoError,
	SnapshotDB: "",
	ZoneDir:    "/etc/rr-authdns/zones/",
}

// validIPPort reports whether the field is an "IP:Port" pair with a literal IP
// and a port in 1-65535.
func validIPPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	if net.ParseIP(ip) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0
}

// envLoader loads DNS_-prefixed environment variables, lowercasing keys and
// stripping the prefix. It is a variable so tests can replace it.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
