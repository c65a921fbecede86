package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config interface {
	EnvConfig
	APIConfig
	CredentialsConfig
	PathsConfig
	ListConfig
	CorsConfig
	MockAPIConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLogFile() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Credentials
	Paths
	List
	Cors
	MockAPI
}

// New returns a Config backed by environment variables and built-in defaults.
func New() Config {
	return newMainConfig(&File{})
}

// Load reads the optional TOML file at path and layers environment variables
// over it. A missing file is not an error.
func Load(path string) (Config, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return newMainConfig(file), nil
}

func newMainConfig(file *File) mainConfig {
	return mainConfig{
		EnvVars:     EnvVars{file: file},
		API:         API{file: file},
		Credentials: Credentials{file: file},
		Paths:       Paths{file: file},
		List:        List{file: file},
		Cors:        Cors{file: file},
		MockAPI:     MockAPI{file: file},
	}
}

// File mirrors the TOML configuration file. Zero values mean "not set".
type File struct {
	AppName  string `toml:"app_name"`
	Env      string `toml:"env"`
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	API struct {
		BaseURL           string  `toml:"base_url"`
		TimeoutSecs       int     `toml:"timeout_secs"`
		RetryBudget       int     `toml:"retry_budget"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		RequestBurst      int     `toml:"request_burst"`
	} `toml:"api"`

	Credentials struct {
		StorePath string `toml:"store_path"`
	} `toml:"credentials"`

	List struct {
		DebounceMillis  int   `toml:"debounce_millis"`
		DefaultPageSize int   `toml:"default_page_size"`
		PageSizeOptions []int `toml:"page_size_options"`
	} `toml:"list"`

	Cors struct {
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"cors"`

	MockAPI struct {
		JWTSecret          string `toml:"jwt_secret"`
		AccessTokenMinutes int    `toml:"access_token_minutes"`
		RefreshTokenHours  int    `toml:"refresh_token_hours"`
		SuperuserEmail     string `toml:"superuser_email"`
		SuperuserPassword  string `toml:"superuser_password"`
	} `toml:"mockapi"`
}

func LoadFile(path string) (*File, error) {
	file := &File{}
	if path == "" {
		return file, nil
	}
	if _, err := toml.DecodeFile(path, file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return file, nil
		}
		return nil, fmt.Errorf("[config LoadFile] %s: %w", path, err)
	}
	return file, nil
}
