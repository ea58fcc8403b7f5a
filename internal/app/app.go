package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mvalarezo/taller/internal/auth"
	"github.com/mvalarezo/taller/internal/config"
	"github.com/mvalarezo/taller/internal/gateway"
	"github.com/mvalarezo/taller/internal/logging"
	"github.com/mvalarezo/taller/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Tokens auth.TokenStore

	// Gateway to the backend API
	Gateway gateway.API

	// Services
	ReportService service.ReportService
}

// New creates a new App instance, initializing all dependencies.
// It handles:
// 1. Loading config
// 2. Setting up the file logger
// 3. Reading the API token (keyring or environment)
// 4. Creating the gateway client and services
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing).
// A missing token is not fatal: the gateway sends no Authorization header
// and the backend decides whether to accept the request.
func NewWithConfig(cfg *config.Config) (*App, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenStore()
	token, err := tokens.GetToken()
	if err != nil && !errors.Is(err, auth.ErrNoToken) {
		log.WithError(err).Warn("could not read API token")
	}

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   token,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Logger:  log,
	})

	return &App{
		Config:        cfg,
		Log:           log,
		Tokens:        tokens,
		Gateway:       gw,
		ReportService: service.NewReportService(gw),
	}, nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
