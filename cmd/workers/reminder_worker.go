package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lumenfolio/studio-portal/studio-portal-backend/internal/config"
	"lumenfolio/studio-portal/studio-portal-backend/internal/contracts"
	"lumenfolio/studio-portal/studio-portal-backend/internal/notifications"
)

// ReminderWorker sweeps contracts whose delivery window is closing or has
// passed and dispatches reminder notifications.
type ReminderWorker struct {
	repo     contracts.Repository
	notifier contracts.Notifier
	clock    contracts.Clock
	logger   *zap.Logger
	config   ReminderWorkerConfig
}

// ReminderWorkerConfig configuration for the reminder worker
type ReminderWorkerConfig struct {
	LeadDays      int
	BatchSize     int
	MaxConcurrent int
	SweepTimeout  time.Duration
}

// DefaultReminderWorkerConfig returns default configuration
func DefaultReminderWorkerConfig() ReminderWorkerConfig {
	return ReminderWorkerConfig{
		LeadDays:      7,
		BatchSize:     50,
		MaxConcurrent: 5,
		SweepTimeout:  5 * time.Minute,
	}
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(repo contracts.Repository, notifier contracts.Notifier, clock contracts.Clock, logger *zap.Logger, config ReminderWorkerConfig) *ReminderWorker {
	return &ReminderWorker{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		config:   config,
	}
}

// Sweep finds contracts due within the lead window and notifies each one.
func (w *ReminderWorker) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.config.SweepTimeout)
	defer cancel()

	now := w.clock.Now()
	cutoff := now.AddDate(0, 0, w.config.LeadDays)

	due, err := w.repo.ListDeliveriesDue(ctx, cutoff, w.config.BatchSize)
	if err != nil {
		w.logger.Error("Failed to list due deliveries", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	w.logger.Info("Processing delivery reminders", zap.Int("count", len(due)))

	sem := make(chan struct{}, w.config.MaxConcurrent)
	for i := range due {
		sem <- struct{}{}

		go func(c *contracts.Contract) {
			defer func() { <-sem }()

			w.remind(ctx, c, now)
		}(&due[i])
	}

	// Wait for all goroutines to finish
	for i := 0; i < w.config.MaxConcurrent; i++ {
		sem <- struct{}{}
	}
}

func (w *ReminderWorker) remind(ctx context.Context, c *contracts.Contract, now time.Time) {
	progress := contracts.ComputeProgress(*c, now)

	event := "delivery.reminder"
	if progress.IsOverdue {
		event = "delivery.overdue"
	}

	if err := w.notifier.ContractEvent(ctx, c, event); err != nil {
		w.logger.Error("Failed to send delivery reminder",
			zap.String("contract_id", c.ID.String()),
			zap.String("event", event),
			zap.Error(err))
		return
	}

	w.logger.Info("Delivery reminder sent",
		zap.String("contract_id", c.ID.String()),
		zap.String("event", event),
		zap.Bool("overdue", progress.IsOverdue))
}

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database
	dbURL := cfg.Database.GetDatabaseURL()
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	gormDB, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to open gorm connection", zap.Error(err))
	}

	notifier, err := notifications.NewService(gormDB, &notifications.LogSender{Logger: logger}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize notifications", zap.Error(err))
	}

	workerConfig := DefaultReminderWorkerConfig()
	workerConfig.LeadDays = cfg.Delivery.ReminderLeadDays
	workerConfig.BatchSize = cfg.Delivery.SweepBatchSize

	worker := NewReminderWorker(
		contracts.NewRepository(db),
		notifier,
		contracts.SystemClock(),
		logger,
		workerConfig,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Schedule the sweep
	scheduler := cron.New(cron.WithSeconds())
	if _, err := scheduler.AddFunc(cfg.Delivery.SweepSchedule, func() {
		worker.Sweep(ctx)
	}); err != nil {
		logger.Fatal("Invalid sweep schedule",
			zap.String("schedule", cfg.Delivery.SweepSchedule),
			zap.Error(err))
	}
	scheduler.Start()

	logger.Info("Reminder worker started",
		zap.String("schedule", cfg.Delivery.SweepSchedule),
		zap.Int("lead_days", workerConfig.LeadDays))

	// Run one sweep at startup so a restart never misses the day's batch
	worker.Sweep(ctx)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received")
	cancel()
	<-scheduler.Stop().Done()

	logger.Info("Reminder worker stopped")
}
