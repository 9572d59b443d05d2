package container

import (
	"cocial-api/internal/config"
	"cocial-api/internal/repository"
	"cocial-api/internal/service"
	"cocial-api/internal/service/auth"
	"cocial-api/internal/token"
	"cocial-api/pkg/database"
	"cocial-api/pkg/logger"
	"cocial-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client
	TokenStore  token.Store
	Services    *service.Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB, redisClient *redis.Client) *Container {
	tokenStore := token.NewRedisStore(redisClient, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	provider := auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, log)
	states := auth.NewRedisStateStore(redisClient)

	services := &service.Services{
		Auth:    auth.NewService(provider, states, userRepo, tokenStore, log),
		Message: service.NewMessageService(messageRepo, log),
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		TokenStore:  tokenStore,
		Services:    services,
	}
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetMessageService returns the message service
func (c *Container) GetMessageService() *service.MessageService {
	return c.Services.Message
}

// GetTokenStore returns the token store
func (c *Container) GetTokenStore() token.Store {
	return c.TokenStore
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetDB returns the database handle
func (c *Container) GetDB() *database.PostgresDB {
	return c.DB
}

// GetRedisClient returns the Redis client
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}
