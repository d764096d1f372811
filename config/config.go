package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type retryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

type upload struct {
	Dir          string `mapstructure:"dir"`
	PublicPrefix string `mapstructure:"public_prefix"`
	MaxMemory    int64  `mapstructure:"max_memory"`
}

type auth struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`
	AdminTokenTTL      time.Duration `mapstructure:"admin_token_ttl"`
	CustomerTokenTTL   time.Duration `mapstructure:"customer_token_ttl"`
	AllowAdminRegister bool          `mapstructure:"allow_admin_register"`
}

type otp struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Length int           `mapstructure:"length"`
}

type redis struct {
	URL string `mapstructure:"url"`
}

type topics struct {
	CatalogEvents string `mapstructure:"catalog_events"`
	Orders        string `mapstructure:"orders"`
}

type groups struct {
	ProductPopularity string `mapstructure:"product_popularity"`
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Groups             groups    `mapstructure:"groups"`
	TLS                brokerTLS `mapstructure:"tls"`
}

// Enabled reports whether seed brokers are configured.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel       slog.Level  `mapstructure:"log_level"`
	LogFormat      string      `mapstructure:"log_format"`
	HTTPServerAddr string      `mapstructure:"http_server_addr"`
	AllowedOrigin  string      `mapstructure:"allowed_origin"`
	SQLDB          string      `mapstructure:"sql_db"`
	Retry          retryConfig `mapstructure:"retry"`
	Upload         upload      `mapstructure:"upload"`
	Auth           auth        `mapstructure:"auth"`
	OTP            otp         `mapstructure:"otp"`
	Redis          redis       `mapstructure:"redis"`
	Broker         broker      `mapstructure:"broker"`
}

func Load() Config {
	_ = godotenv.Load()

	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("http_server_addr", ":8000")
	v.SetDefault("allowed_origin", "http://localhost:3000")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", "1s")
	v.SetDefault("upload.dir", "./public/images")
	v.SetDefault("upload.public_prefix", "/images/")
	v.SetDefault("upload.max_memory", 32<<20)
	v.SetDefault("auth.admin_token_ttl", "24h")
	v.SetDefault("auth.customer_token_ttl", "72h")
	v.SetDefault("auth.allow_admin_register", false)
	v.SetDefault("otp.ttl", "5m")
	v.SetDefault("otp.length", 4)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.catalog_events", "catalog-events")
	v.SetDefault("broker.topics.orders", "orders")
	v.SetDefault("broker.groups.product_popularity", "product-popularity")
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFormat=%q
	HTTPServerAddr=%q
	AllowedOrigin=%q
	SQLDB=%q

	Retry:
	MaxAttempts=%d
	BaseDelay=%s

	Upload:
	Dir=%q
	PublicPrefix=%q

	Auth:
	JWTSecret=%q
	AdminTokenTTL=%s
	CustomerTokenTTL=%s
	AllowAdminRegister=%t

	OTP:
	TTL=%s
	Length=%d
	RedisURL=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogEvents=%q
		Orders=%q
	Groups:
		ProductPopularity=%q
	TLS:
		CAFile=%q
		CertFile=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFormat,
		c.HTTPServerAddr,
		c.AllowedOrigin,
		mask(c.SQLDB),
		c.Retry.MaxAttempts,
		c.Retry.BaseDelay,
		c.Upload.Dir,
		c.Upload.PublicPrefix,
		mask(c.Auth.JWTSecret),
		c.Auth.AdminTokenTTL,
		c.Auth.CustomerTokenTTL,
		c.Auth.AllowAdminRegister,
		c.OTP.TTL,
		c.OTP.Length,
		mask(c.Redis.URL),
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogEvents,
		c.Broker.Topics.Orders,
		c.Broker.Groups.ProductPopularity,
		c.Broker.TLS.CAFile,
		c.Broker.TLS.CertFile,
	)
}
