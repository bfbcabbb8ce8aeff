package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"netrepro/internal/domain"
)

type Config struct {
	Env     string        `mapstructure:"env"`
	Targets TargetsConfig `mapstructure:"targets"`
	Sampler SamplerConfig `mapstructure:"sampler"`
	Checks  ChecksConfig  `mapstructure:"checks"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type TargetsConfig struct {
	Local    TargetConfig `mapstructure:"local"`
	Internet TargetConfig `mapstructure:"internet"`
}

type TargetConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type SamplerConfig struct {
	IntervalSeconds    int    `mapstructure:"interval_seconds"`
	DialTimeoutSeconds int    `mapstructure:"dial_timeout_seconds"`
	GraceSeconds       int    `mapstructure:"grace_seconds"`
	GraceEnabled       bool   `mapstructure:"grace_enabled"`
	BindInterface      string `mapstructure:"bind_interface"`
}

type ChecksConfig struct {
	SystemPing         bool `mapstructure:"system_ping"`
	Netcat             bool `mapstructure:"netcat"`
	Redis              bool `mapstructure:"redis"`
	ICMP               bool `mapstructure:"icmp"`
	ICMPPrivileged     bool `mapstructure:"icmp_privileged"`
	BoundDial          bool `mapstructure:"bound_dial"`
	RouteTable         bool `mapstructure:"route_table"`
	ARPTable           bool `mapstructure:"arp_table"`
	PingTimeoutSeconds int  `mapstructure:"ping_timeout_seconds"`
}

type RedisConfig struct {
	// Addr defaults to the local target when empty; the local target is a
	// Redis instance in the original reproduction setup.
	Addr string `mapstructure:"addr"`
}

func Load() (*Config, error) {

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("local")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("env", "local")

	// Target defaults mirror the environment the anomaly was first observed
	// in: a LAN Redis instance and a public DNS resolver as the control.
	viper.SetDefault("targets.local.host", "10.8.100.100")
	viper.SetDefault("targets.local.port", 6379)
	viper.SetDefault("targets.internet.host", "8.8.8.8")
	viper.SetDefault("targets.internet.port", 53)

	viper.SetDefault("sampler.interval_seconds", 10)
	viper.SetDefault("sampler.dial_timeout_seconds", 5)
	viper.SetDefault("sampler.grace_seconds", 30)
	viper.SetDefault("sampler.grace_enabled", true)
	viper.SetDefault("sampler.bind_interface", "")

	viper.SetDefault("checks.system_ping", true)
	viper.SetDefault("checks.netcat", true)
	viper.SetDefault("checks.redis", true)
	viper.SetDefault("checks.icmp", true)
	viper.SetDefault("checks.icmp_privileged", false)
	viper.SetDefault("checks.bound_dial", true)
	viper.SetDefault("checks.route_table", true)
	viper.SetDefault("checks.arp_table", true)
	viper.SetDefault("checks.ping_timeout_seconds", 2)

	viper.SetDefault("redis.addr", "")
}

func (c *Config) validate() error {
	for _, t := range []struct {
		name string
		tc   TargetConfig
	}{
		{"targets.local", c.Targets.Local},
		{"targets.internet", c.Targets.Internet},
	} {
		if t.tc.Host == "" {
			return fmt.Errorf("config: %s.host is required", t.name)
		}
		if t.tc.Port <= 0 || t.tc.Port > 65535 {
			return fmt.Errorf("config: %s.port %d out of range", t.name, t.tc.Port)
		}
	}
	return nil
}

// LocalTarget returns the probe endpoint suspected of being affected by the
// anomaly.
func (c *Config) LocalTarget() domain.Target {
	return domain.Target{Label: domain.LabelLocal, Host: c.Targets.Local.Host, Port: c.Targets.Local.Port}
}

// InternetTarget returns the control endpoint expected to stay reachable.
func (c *Config) InternetTarget() domain.Target {
	return domain.Target{Label: domain.LabelInternet, Host: c.Targets.Internet.Host, Port: c.Targets.Internet.Port}
}

func (c *Config) GetInterval() time.Duration {
	return time.Duration(c.Sampler.IntervalSeconds) * time.Second
}

func (c *Config) GetDialTimeout() time.Duration {
	return time.Duration(c.Sampler.DialTimeoutSeconds) * time.Second
}

func (c *Config) GetGracePeriod() time.Duration {
	return time.Duration(c.Sampler.GraceSeconds) * time.Second
}

func (c *Config) GetPingTimeout() time.Duration {
	return time.Duration(c.Checks.PingTimeoutSeconds) * time.Second
}

// RedisAddr resolves the key-value store address, falling back to the local
// target.
func (c *Config) RedisAddr() string {
	if c.Redis.Addr != "" {
		return c.Redis.Addr
	}
	return c.LocalTarget().Addr()
}
