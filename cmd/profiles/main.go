package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-profile/pkg/idbridge"
	"github.com/tendant/simple-profile/pkg/notify"
	"github.com/tendant/simple-profile/pkg/profile"
	profileapi "github.com/tendant/simple-profile/pkg/profile/api"
)

type ProfileDbConfig struct {
	Host     string `env:"PROFILE_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PROFILE_PG_PORT" env-default:"5432"`
	Database string `env:"PROFILE_PG_DATABASE" env-default:"profile_db"`
	User     string `env:"PROFILE_PG_USER" env-default:"profile"`
	Password string `env:"PROFILE_PG_PASSWORD" env-default:"pwd"`
}

func (d ProfileDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type IdentityBridgeConfig struct {
	// Kind selects the bridge implementation: rest, memory or noop.
	Kind    string `env:"IDENTITY_BRIDGE" env-default:"noop"`
	BaseURL string `env:"IDENTITY_BASE_URL" env-default:"http://localhost:8089"`
	// ServiceToken is the elevated capability authorizing account
	// mutations regardless of the calling user's permissions.
	ServiceToken string `env:"IDENTITY_SERVICE_TOKEN" env-default:""`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-default:""`
	Port     int    `env:"SMTP_PORT" env-default:"1025"`
	TLS      bool   `env:"SMTP_TLS" env-default:"false"`
	Username string `env:"SMTP_USERNAME" env-default:""`
	Password string `env:"SMTP_PASSWORD" env-default:""`
	From     string `env:"SMTP_FROM" env-default:"noreply@example.com"`
}

type Config struct {
	ProfileDbConfig      ProfileDbConfig
	IdentityBridgeConfig IdentityBridgeConfig
	SMTPConfig           SMTPConfig
	AppConfig            app.AppConfig
	PersistenceType      string `env:"PERSISTENCE_TYPE" env-default:"postgres"`
	FileDataDir          string `env:"FILE_DATA_DIR" env-default:"./data"`
}

func main() {
	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	repoConfig := profile.RepositoryConfig{DataDir: config.FileDataDir}
	if config.PersistenceType == "postgres" || config.PersistenceType == "postgresql" {
		dbConfig := config.ProfileDbConfig.toDbConfig()
		pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
		if err != nil {
			slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
			os.Exit(-1)
		}
		repoConfig.Pool = pool
	}

	repo, err := profile.NewProfileRepository(config.PersistenceType, repoConfig)
	if err != nil {
		slog.Error("Failed creating profile repository", "type", config.PersistenceType, "err", err)
		os.Exit(-1)
	}

	bridge := newBridge(config.IdentityBridgeConfig)

	opts := []profile.ProfileServiceOption{}
	if config.SMTPConfig.Host != "" {
		notifier, err := notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     config.SMTPConfig.Host,
			Port:     config.SMTPConfig.Port,
			TLS:      config.SMTPConfig.TLS,
			Username: config.SMTPConfig.Username,
			Password: config.SMTPConfig.Password,
			From:     config.SMTPConfig.From,
		})
		if err != nil {
			slog.Error("Failed creating email notifier", "err", err)
			os.Exit(-1)
		}
		opts = append(opts, profile.WithNotifier(notifier))
	}

	profileService := profile.NewProfileService(repo, bridge, opts...)
	profileHandle := profileapi.NewHandle(profileService)
	profileHandle.RegisterRoutes(server.R)

	server.Run()
}

func newBridge(config IdentityBridgeConfig) idbridge.IdentityBridge {
	switch config.Kind {
	case "rest":
		return idbridge.NewRESTIdentityBridge(config.BaseURL, config.ServiceToken)
	case "memory", "inmem":
		return idbridge.NewInMemIdentityBridge()
	default:
		slog.Info("Running without identity mirroring", "bridge", config.Kind)
		return idbridge.NewNoopIdentityBridge()
	}
}
