package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/auth"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/cache"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/events"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/repositories"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Password hashing cost; zero means bcrypt.DefaultCost
	BcryptCost int

	// Global settings
	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	cacheManager   *cache.CacheManager
	tokenManager   *auth.TokenManager
	eventPublisher events.EventPublisher
	config         ServiceManagerConfig

	// Service instances
	accountService   AccountService
	directoryService DirectoryService
	sessionService   SessionService
	messageService   MessageService
	seedService      SeedService
	exportService    ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	tokenManager *auth.TokenManager,
	eventPublisher events.EventPublisher,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:           repo,
		logger:         logger,
		validator:      v,
		cacheManager:   cacheManager,
		tokenManager:   tokenManager,
		eventPublisher: eventPublisher,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	cacheManager *cache.CacheManager,
	tokenManager *auth.TokenManager,
	eventPublisher events.EventPublisher,
) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		DefaultTimeout:     30 * time.Second,
	}

	return NewServiceManager(repo, logger, v, cacheManager, tokenManager, eventPublisher, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.accountService = NewAccountService(sm.repo, sm.logger, sm.validator, sm.cacheManager, sm.tokenManager, sm.eventPublisher, sm.config.BcryptCost)
	sm.logger.Info("Account service initialized")

	sm.directoryService = NewDirectoryService(sm.repo, sm.logger)
	sm.logger.Info("Directory service initialized")

	sm.sessionService = NewSessionService(sm.repo, sm.directoryService, sm.logger, sm.validator, sm.eventPublisher)
	sm.logger.Info("Session service initialized")

	sm.messageService = NewMessageService(sm.repo, sm.logger, sm.validator)
	sm.logger.Info("Message service initialized")

	sm.seedService = NewSeedService(sm.repo, sm.logger, sm.config.BcryptCost)
	sm.logger.Info("Seed service initialized")

	sm.exportService = NewExportService(sm.repo, sm.directoryService, sm.logger)
	sm.logger.Info("Export service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.accountService
}

func (sm *serviceManager) Directory() DirectoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.directoryService
}

func (sm *serviceManager) Session() SessionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.sessionService
}

func (sm *serviceManager) Message() MessageService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.messageService
}

func (sm *serviceManager) Seed() SeedService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.seedService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := sm.config.DefaultTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}
