package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Upstreams UpstreamsConfig `mapstructure:"upstreams"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Features  FeaturesConfig  `mapstructure:"features"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// UpstreamConfig describes one upstream HTTP dependency. Token, when set,
// is attached as a bearer credential to every outbound call; it is not
// verified on this side.
type UpstreamConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Token         string        `mapstructure:"token"`
	StrictRecords bool          `mapstructure:"strict_records"`
}

type UpstreamsConfig struct {
	Tasks UpstreamConfig `mapstructure:"tasks"`
	Notes UpstreamConfig `mapstructure:"notes"`
	OAuth OAuthConfig    `mapstructure:"oauth"`
}

// OAuthConfig configures a client-credentials token source shared by both
// upstream clients. Left empty, outbound calls fall back to the static
// per-upstream token, or to no credential at all.
type OAuthConfig struct {
	TokenURL     string   `mapstructure:"token_url"`
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`
}

func (o *OAuthConfig) Enabled() bool {
	return o.TokenURL != "" && o.ClientID != ""
}

type AuthConfig struct {
	AdminAPIKey    string   `mapstructure:"admin_api_key"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type FeaturesConfig struct {
	RequestIDHeader      string        `mapstructure:"request_id_header"`
	EnableRequestLogging bool          `mapstructure:"enable_request_logging"`
	EnableReportStream   bool          `mapstructure:"enable_report_stream"`
	StreamInterval       time.Duration `mapstructure:"stream_interval"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("REPORTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv builds a config without a config file, for deployments that
// inject everything through REPORTLY_* environment variables.
func LoadFromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPORTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.output_paths", []string{"stdout"})
	v.SetDefault("logger.error_output_paths", []string{"stderr"})

	v.SetDefault("upstreams.tasks.base_url", "http://localhost:8001")
	v.SetDefault("upstreams.tasks.timeout", 5*time.Second)
	v.SetDefault("upstreams.tasks.strict_records", true)
	v.SetDefault("upstreams.notes.base_url", "http://localhost:8002")
	v.SetDefault("upstreams.notes.timeout", 5*time.Second)
	v.SetDefault("upstreams.notes.strict_records", true)

	v.SetDefault("auth.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("features.request_id_header", "X-Request-ID")
	v.SetDefault("features.enable_request_logging", true)
	v.SetDefault("features.enable_report_stream", false)
	v.SetDefault("features.stream_interval", 10*time.Second)
}
