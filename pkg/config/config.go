package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Entornos reconocidos en APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config agrupa la configuración de la aplicación. Se construye una vez con Load y se pasa por referencia.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
	Bootstrap BootstrapConfig
}

// AppConfig configuración general de la app.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// IsProduction indica si APP_ENV es production.
func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL está definido se usa tal cual como cadena de conexión.
type DBConfig struct {
	DatabaseURL     string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	SlowQueryMillis int
	AutoMigrate     bool
}

// ConnectionString devuelve DATABASE_URL si está definido; si no, el DSN construido por partes.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye la URL de postgres escapando caracteres especiales en usuario y contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig firma de tokens.
type JWTConfig struct {
	Secret     string
	Algorithm  string // HS256, HS384, HS512
	Expiration int    // minutos
	Issuer     string
}

// SMTPConfig correo saliente. Host vacío desactiva el envío real.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
}

// Enabled indica si hay un servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// HTTPConfig servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string
}

// Addr devuelve host:port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TelemetryConfig exportador de trazas (OTLP/HTTP).
type TelemetryConfig struct {
	OTLPEndpoint string
}

// BootstrapConfig credenciales del primer administrador creado al arrancar.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load carga la configuración del directorio de trabajo (ver LoadFrom).
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom lee dir/.env y encima dir/config.* (o dir/config/config.*); las
// variables de entorno tienen prioridad sobre ambos archivos.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, ".env"))
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !configNotFound(err) {
		return nil, fmt.Errorf("leer .env: %w", err)
	}

	file := viper.New()
	file.SetConfigName("config")
	file.AddConfigPath(dir)
	file.AddConfigPath(filepath.Join(dir, "config"))
	switch err := file.ReadInConfig(); {
	case err == nil:
		if err := v.MergeConfigMap(file.AllSettings()); err != nil {
			return nil, fmt.Errorf("combinar %s: %w", file.ConfigFileUsed(), err)
		}
	case !configNotFound(err):
		return nil, fmt.Errorf("leer %s: %w", file.ConfigFileUsed(), err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", EnvDevelopment),
			Name:     getString(v, "APP_NAME", "recruitment-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:     getString(v, "DATABASE_URL", ""),
			Host:            getString(v, "DB_HOST", "localhost"),
			Port:            getInt(v, "DB_PORT", 5432),
			User:            getString(v, "DB_USER", "postgres"),
			Password:        getString(v, "DB_PASSWORD", ""),
			DBName:          getString(v, "DB_NAME", "recruitment"),
			SSLMode:         getString(v, "DB_SSLMODE", "disable"),
			MaxConns:        getInt(v, "DB_MAX_CONNS", 10),
			SlowQueryMillis: getInt(v, "DB_SLOW_QUERY_MS", 100),
			AutoMigrate:     getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Algorithm:  getString(v, "JWT_ALGORITHM", "HS256"),
			Expiration: getInt(v, "ACCESS_TOKEN_EXPIRE_MINUTES", 30),
			Issuer:     getString(v, "JWT_ISSUER", "recruitment-api"),
		},
		SMTP: SMTPConfig{
			Host:      getString(v, "SMTP_HOST", ""),
			Port:      getInt(v, "SMTP_PORT", 587),
			User:      getString(v, "SMTP_USER", ""),
			Password:  getString(v, "SMTP_PASSWORD", ""),
			FromEmail: getString(v, "FROM_EMAIL", "recruitment@localhost"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8000),
			AllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    getString(v, "FIRST_ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "FIRST_ADMIN_PASSWORD", ""),
		},
	}
}

// Validate rechaza configuraciones con las que el servidor no puede arrancar.
// En development un JWT_SECRET vacío se reemplaza por uno local fijo.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.App.IsProduction() {
			return errors.New("config: JWT_SECRET is required in production")
		}
		c.JWT.Secret = "development-only-secret"
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: unsupported JWT_ALGORITHM %q", c.JWT.Algorithm)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.JWT.Expiration)
	}
	if c.SMTP.Enabled() && (c.SMTP.Port <= 0 || c.SMTP.Port > 65535) {
		return fmt.Errorf("config: invalid SMTP_PORT %d", c.SMTP.Port)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
