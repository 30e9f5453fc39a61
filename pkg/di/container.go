package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"barbershop-attendance/application/serviceimpl"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
	"barbershop-attendance/infrastructure/locking"
	"barbershop-attendance/infrastructure/postgres"
	"barbershop-attendance/infrastructure/redis"
	"barbershop-attendance/infrastructure/storage"
	websocketManager "barbershop-attendance/infrastructure/websocket"
	"barbershop-attendance/interfaces/api/handlers"
	"barbershop-attendance/pkg/config"
	"barbershop-attendance/pkg/logger"
	"barbershop-attendance/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redis.RedisClient // nil when redis was unreachable at startup
	BunnyStorage   *storage.BunnyStorage
	EventScheduler scheduler.EventScheduler
	Locker         services.SubjectLocker
	WebSockets     *websocketManager.WebSocketManager

	// Repositories
	Transactor           repositories.Transactor
	ShiftRepository      repositories.ShiftRepository
	IdentityRepository   repositories.IdentityRepository
	ConfigRepository     repositories.AttendanceConfigRepository
	DeviceRepository     repositories.AttendanceDeviceRepository
	EnrollmentRepository repositories.FaceEnrollmentRepository
	ActivityRepository   repositories.AttendanceActivityRepository

	// Services
	AttendanceService       services.AttendanceService
	AttendanceConfigService services.AttendanceConfigService
	ActivityService         services.AttendanceActivityService
	EnrollmentService       services.EnrollmentService
	DeviceService           services.DeviceService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{"env": cfg.App.Env})
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		Debug:    !c.Config.App.IsProduction(),
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	if c.Config.Attendance.MigrateIdentityTables {
		if err := postgres.MigrateIdentity(db); err != nil {
			return err
		}
		logger.StartupWarn("identity_tables_migrated", "Identity tables migrated (development only)", nil)
	}

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis
	redisConfig := redis.RedisConfig{
		Host:     c.Config.Redis.Host,
		Port:     c.Config.Redis.Port,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
	redisClient := redis.NewRedisClient(redisConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		logger.StartupWarn("redis_connection_failed", "Redis connection failed, falling back to in-process locks", map[string]interface{}{"error": err.Error()})
		_ = redisClient.Close()
		c.Locker = locking.NewLocalLocker()
	} else {
		logger.Startup("redis_connected", "Redis connected", nil)
		c.RedisClient = redisClient
		c.Locker = redis.NewSubjectLocker(redisClient, 0)
	}

	// Initialize Bunny Storage
	bunnyConfig := storage.BunnyConfig{
		StorageZone: c.Config.Bunny.StorageZone,
		AccessKey:   c.Config.Bunny.AccessKey,
		BaseURL:     c.Config.Bunny.BaseURL,
	}
	c.BunnyStorage = storage.NewBunnyStorage(bunnyConfig)
	if c.BunnyStorage.Enabled() {
		logger.Startup("bunny_storage_initialized", "Bunny Storage initialized", nil)
	} else {
		logger.StartupWarn("bunny_storage_not_configured", "Bunny Storage not configured, photos will not be released", nil)
	}

	c.WebSockets = websocketManager.Manager

	return nil
}

func (c *Container) initRepositories() error {
	c.Transactor = postgres.NewTransactor(c.DB)
	c.ShiftRepository = postgres.NewShiftRepository(c.DB)
	c.IdentityRepository = postgres.NewIdentityRepository(c.DB)
	c.DeviceRepository = postgres.NewAttendanceDeviceRepository(c.DB)
	c.EnrollmentRepository = postgres.NewFaceEnrollmentRepository(c.DB)
	c.ActivityRepository = postgres.NewAttendanceActivityRepository(c.DB)

	c.ConfigRepository = postgres.NewAttendanceConfigRepository(c.DB)
	if c.RedisClient != nil {
		c.ConfigRepository = redis.NewCachedAttendanceConfigRepository(c.ConfigRepository, c.RedisClient, c.Config.Attendance.ConfigCacheTTL)
	}

	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	now := services.Clock(postgres.NowUTC)
	identity := serviceimpl.NewIdentityResolver(c.IdentityRepository)

	var photos services.PhotoStorage
	if c.BunnyStorage.Enabled() {
		photos = c.BunnyStorage
	}

	c.AttendanceConfigService = serviceimpl.NewAttendanceConfigService(c.ConfigRepository)
	c.ActivityService = serviceimpl.NewAttendanceActivityService(c.ActivityRepository, now)
	c.DeviceService = serviceimpl.NewDeviceService(c.DeviceRepository, now)
	c.EnrollmentService = serviceimpl.NewEnrollmentService(
		c.Transactor,
		c.EnrollmentRepository,
		identity,
		photos,
		c.Locker,
		c.Config.Attendance.LockTimeout,
		now,
	)
	c.AttendanceService = serviceimpl.NewAttendanceService(
		c.Transactor,
		c.ShiftRepository,
		c.AttendanceConfigService,
		identity,
		c.Locker,
		c.Config.Attendance.LockTimeout,
		c.WebSockets,
		c.ActivityService,
		now,
	)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler(time.UTC)

	if err := scheduler.RegisterAttendanceJobs(c.EventScheduler, c.ActivityService, c.Config.Attendance.ActivityRetentionDays); err != nil {
		logger.StartupWarn("jobs_schedule_failed", "Failed to schedule attendance jobs", map[string]interface{}{"error": err.Error()})
	}

	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", map[string]interface{}{"jobs": len(c.EventScheduler.ListJobs())})
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	// Stop scheduler
	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
		} else {
			logger.Startup("scheduler_already_stopped", "Event scheduler was already stopped", nil)
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AttendanceService:       c.AttendanceService,
		AttendanceConfigService: c.AttendanceConfigService,
		AttendanceActivity:      c.ActivityService,
		EnrollmentService:       c.EnrollmentService,
		DeviceService:           c.DeviceService,
	}
}

func (c *Container) GetHealthHandler() *handlers.HealthHandler {
	return handlers.NewHealthHandler(c.DB, c.RedisClient, c.BunnyStorage, c.EventScheduler, c.WebSockets)
}
