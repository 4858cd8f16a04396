package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	ServerPort      string
	OperatorWorkers int

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		ServerPort:       "9446",
		OperatorWorkers:  4,
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  30 * 24 * time.Hour,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envServerPort := os.Getenv("SERVER_PORT")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")
	envAccessTokenTTL := os.Getenv("ACCESS_TOKEN_TTL")
	envRefreshTokenTTL := os.Getenv("REFRESH_TOKEN_TTL")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envServerPort) != 0 {
		env.ServerPort = envServerPort
	}

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil {
			return nil, err
		}
		env.OperatorWorkers = workers
	}

	if len(envAccessTokenTTL) != 0 {
		ttl, err := time.ParseDuration(envAccessTokenTTL)
		if err != nil {
			return nil, err
		}
		env.AccessTokenTTL = ttl
	}

	if len(envRefreshTokenTTL) != 0 {
		ttl, err := time.ParseDuration(envRefreshTokenTTL)
		if err != nil {
			return nil, err
		}
		env.RefreshTokenTTL = ttl
	}

	return &env, nil
}

// ConnectionString builds the postgres DSN used by both the server and the
// migrations runner.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
