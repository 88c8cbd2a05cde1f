package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DatabaseDSN   string `env:"DATABASE_DSN,required,notEmpty"`
	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`

	GithubClientID     string `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GithubRedirectURL  string `env:"GITHUB_REDIRECT_URL"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SignInPath string `env:"SIGNIN_PATH" envDefault:"/auth/signin"`
	ErrorPath  string `env:"ERROR_PATH" envDefault:"/login"`
}

// Load reads configuration from the environment. A missing DATABASE_DSN
// or SESSION_SECRET is an error; the caller treats it as fatal.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
