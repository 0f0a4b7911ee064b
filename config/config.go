package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"
	defaultHTTPPort           = 8080
	defaultPasswordMaxLength  = 128
	defaultSaltLength         = 16
	defaultBcryptCost         = 12

	defaultArgon2Time      = 1
	defaultArgon2MemoryKiB = 64 * 1024
	defaultArgon2Threads   = 4
	defaultArgon2KeyLength = 32
)

// Credential hashing algorithms understood by the credential codec.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Policies for listing an empty user collection.
const (
	EmptyListNotFound = "not_found"
	EmptyListEmpty    = "empty"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	Credential *CredentialConfig `json:"credential" yaml:"credential"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	Users *UsersConfig `json:"users" yaml:"users"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// MigrationConfig controls schema migrations on startup.
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// CredentialConfig selects and tunes the password hashing primitive.
type CredentialConfig struct {
	Algorithm  string       `json:"algorithm" yaml:"algorithm"`
	SaltLength int          `json:"saltLength" yaml:"saltLength"`
	BcryptCost int          `json:"bcryptCost" yaml:"bcryptCost"`
	Argon2     Argon2Config `json:"argon2" yaml:"argon2"`
}

// Argon2Config holds argon2id cost parameters.
type Argon2Config struct {
	Time      uint32 `json:"time" yaml:"time"`
	MemoryKiB uint32 `json:"memoryKiB" yaml:"memoryKiB"`
	Threads   uint8  `json:"threads" yaml:"threads"`
	KeyLength uint32 `json:"keyLength" yaml:"keyLength"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

// UsersConfig holds boundary policies for the users API.
type UsersConfig struct {
	// EmptyListPolicy is "not_found" (404 on an empty collection) or "empty" (200 with []).
	EmptyListPolicy string `json:"emptyListPolicy" yaml:"emptyListPolicy"`
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section left empty by the config file.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}

	if cfg.Migration == nil {
		cfg.Migration = &MigrationConfig{Enabled: true}
	}

	if cfg.Credential == nil {
		cfg.Credential = &CredentialConfig{}
	}
	cred := cfg.Credential
	if cred.Algorithm == "" {
		cred.Algorithm = AlgorithmArgon2id
	}
	if cred.SaltLength <= 0 {
		cred.SaltLength = defaultSaltLength
	}
	if cred.BcryptCost == 0 {
		cred.BcryptCost = defaultBcryptCost
	}
	if cred.Argon2.Time == 0 {
		cred.Argon2.Time = defaultArgon2Time
	}
	if cred.Argon2.MemoryKiB == 0 {
		cred.Argon2.MemoryKiB = defaultArgon2MemoryKiB
	}
	if cred.Argon2.Threads == 0 {
		cred.Argon2.Threads = defaultArgon2Threads
	}
	if cred.Argon2.KeyLength == 0 {
		cred.Argon2.KeyLength = defaultArgon2KeyLength
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{}
	}
	if cfg.PasswordStrength.MinLength <= 0 {
		cfg.PasswordStrength.MinLength = 1
	}
	if cfg.PasswordStrength.MaxLength <= 0 {
		cfg.PasswordStrength.MaxLength = defaultPasswordMaxLength
	}

	if cfg.Users == nil {
		cfg.Users = &UsersConfig{}
	}
	if cfg.Users.EmptyListPolicy != EmptyListEmpty {
		cfg.Users.EmptyListPolicy = EmptyListNotFound
	}
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
