// Package app wires configuration, infrastructure, and handlers into one
// container the CLI and the daemon share.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	schedServices "github.com/fiesc/examsched/internal/scheduling/application/services"
	schedDomain "github.com/fiesc/examsched/internal/scheduling/domain"
	schedDirectory "github.com/fiesc/examsched/internal/scheduling/infrastructure/directory"
	schedPersistence "github.com/fiesc/examsched/internal/scheduling/infrastructure/persistence"
	schedSQLite "github.com/fiesc/examsched/internal/scheduling/infrastructure/persistence/sqlite"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/eventbus"
	"github.com/fiesc/examsched/internal/shared/infrastructure/locking"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/fiesc/examsched/internal/shared/infrastructure/persistence"
	"github.com/fiesc/examsched/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of Pool (server mode) or LocalDB (local
	// mode) is set.
	Pool    *pgxpool.Pool
	LocalDB *sql.DB

	RedisClient *redis.Client

	// Repositories
	AssignmentRepo schedDomain.AssignmentRepository
	PeriodRepo     schedDomain.PeriodRepository
	Directory      schedDomain.Directory
	OutboxRepo     outbox.Repository

	// LocalDirectory is the writable directory backing local mode. In
	// server mode teachers, rooms, and disciplines come from the
	// institution database and this stays nil.
	LocalDirectory *schedSQLite.Directory

	EventPublisher eventbus.Publisher
	UnitOfWork     sharedApplication.UnitOfWork
	Locker         locking.KeyLocker

	// Command handlers
	CreateAssignmentHandler *schedCommands.CreateAssignmentHandler
	ProposeDateHandler      *schedCommands.ProposeDateHandler
	ReviewProposalHandler   *schedCommands.ReviewProposalHandler
	ResolveAlternateHandler *schedCommands.ResolveAlternateHandler
	ConfirmHandler          *schedCommands.ConfirmAssignmentHandler
	CancelHandler           *schedCommands.CancelAssignmentHandler
	AssignRoomHandler       *schedCommands.AssignRoomHandler
	CreatePeriodHandler     *schedCommands.CreatePeriodHandler
	SetPeriodActiveHandler  *schedCommands.SetPeriodActiveHandler

	// Query handlers
	ListAssignmentsHandler *schedQueries.ListAssignmentsHandler
	GetAssignmentHandler   *schedQueries.GetAssignmentHandler
	ListPeriodsHandler     *schedQueries.ListPeriodsHandler

	// Outbox processor, nil when disabled.
	OutboxProcessor *outbox.Processor
}

// NewContainer builds the dependency graph. With a DATABASE_URL the
// container runs in server mode against PostgreSQL, Redis, and RabbitMQ;
// otherwise it falls back to the local single-file database.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if cfg.DatabaseURL != "" {
		if err := c.initPostgres(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := c.initSQLite(ctx); err != nil {
			return nil, err
		}
	}

	c.initLocker(ctx)
	c.initPublisher()
	c.initHandlers()
	c.initOutboxProcessor()

	return c, nil
}

func (c *Container) initPostgres(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}

	c.Pool = pool
	c.AssignmentRepo = schedPersistence.NewPostgresAssignmentRepository(pool)
	c.PeriodRepo = schedPersistence.NewPostgresPeriodRepository(pool)
	c.Directory = schedDirectory.NewPostgresDirectory(pool)
	c.OutboxRepo = outbox.NewPostgresRepository(pool)
	c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
	return nil
}

func (c *Container) initSQLite(ctx context.Context) error {
	db, err := schedSQLite.Open(ctx, c.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("opening local database: %w", err)
	}

	c.LocalDB = db
	c.AssignmentRepo = schedSQLite.NewAssignmentRepository(db)
	c.PeriodRepo = schedSQLite.NewPeriodRepository(db)
	c.LocalDirectory = schedSQLite.NewDirectory(db)
	c.Directory = c.LocalDirectory
	c.OutboxRepo = schedSQLite.NewOutboxRepository(db)
	c.UnitOfWork = schedSQLite.NewUnitOfWork(db)
	return nil
}

func (c *Container) initLocker(ctx context.Context) {
	if c.Config.RedisURL == "" {
		c.Locker = locking.NewMemoryLocker()
		return
	}

	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid redis url, using in-process locking", "error", err)
		c.Locker = locking.NewMemoryLocker()
		return
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("redis unreachable, using in-process locking", "error", err)
		client.Close()
		c.Locker = locking.NewMemoryLocker()
		return
	}

	c.RedisClient = client
	c.Locker = locking.NewRedisLocker(client, c.Logger)
}

func (c *Container) initPublisher() {
	if c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("rabbitmq unreachable, events stay in the outbox", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.EventPublisher = publisher
}

func (c *Container) initHandlers() {
	hours := schedDomain.OperatingHours{
		StartHour: c.Config.DayStartHour,
		EndHour:   c.Config.DayEndHour,
	}
	checker := schedServices.NewBookingConflictChecker(c.AssignmentRepo)

	c.CreateAssignmentHandler = schedCommands.NewCreateAssignmentHandler(c.AssignmentRepo, c.Directory, c.OutboxRepo, c.UnitOfWork)
	c.ProposeDateHandler = schedCommands.NewProposeDateHandler(c.AssignmentRepo, c.PeriodRepo, c.Directory, c.OutboxRepo, c.UnitOfWork, hours, c.Config.DefaultDurationMins)
	c.ReviewProposalHandler = schedCommands.NewReviewProposalHandler(c.AssignmentRepo, c.PeriodRepo, c.OutboxRepo, c.UnitOfWork, hours)
	c.ResolveAlternateHandler = schedCommands.NewResolveAlternateHandler(c.AssignmentRepo, c.PeriodRepo, c.OutboxRepo, c.UnitOfWork, hours, c.Config.DefaultDurationMins)
	c.ConfirmHandler = schedCommands.NewConfirmAssignmentHandler(c.AssignmentRepo, checker, c.Locker, c.OutboxRepo, c.UnitOfWork)
	c.CancelHandler = schedCommands.NewCancelAssignmentHandler(c.AssignmentRepo, c.OutboxRepo, c.UnitOfWork)
	c.AssignRoomHandler = schedCommands.NewAssignRoomHandler(c.AssignmentRepo, c.Directory, c.OutboxRepo, c.UnitOfWork)
	c.CreatePeriodHandler = schedCommands.NewCreatePeriodHandler(c.PeriodRepo, c.UnitOfWork)
	c.SetPeriodActiveHandler = schedCommands.NewSetPeriodActiveHandler(c.PeriodRepo, c.UnitOfWork)

	c.ListAssignmentsHandler = schedQueries.NewListAssignmentsHandler(c.AssignmentRepo)
	c.GetAssignmentHandler = schedQueries.NewGetAssignmentHandler(c.AssignmentRepo)
	c.ListPeriodsHandler = schedQueries.NewListPeriodsHandler(c.PeriodRepo)
}

func (c *Container) initOutboxProcessor() {
	if !c.Config.OutboxProcessorEnabled {
		return
	}

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: c.Config.OutboxPollInterval,
		BatchSize:    c.Config.OutboxBatchSize,
		MaxRetries:   c.Config.OutboxMaxRetries,
	}, c.Logger)
}

// Close releases every held resource.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.LocalDB != nil {
		c.LocalDB.Close()
	}
}
