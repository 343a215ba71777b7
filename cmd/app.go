package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	practitionerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/practitioner"
	timeSlotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/timeslot"
	bookAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	declareTimeSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_time_slot"
	generateAvailabilitiesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// app общие зависимости всех команд
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics

	db            *sql.DB
	wrappedDB     *dbmetrics.DB
	stopMetricsCh chan struct{}

	practitioners  *practitionerRepo.Repository
	patients       *patientRepo.Repository
	timeSlots      *timeSlotRepo.Repository
	availabilities *availabilityRepo.Repository
	appointments   *appointmentRepo.Repository
	txManager      *txmanager.Manager

	generateAvailabilities *generateAvailabilitiesUC.UseCase
	bookAppointment        *bookAppointmentUC.UseCase
	declareTimeSlot        *declareTimeSlotUC.UseCase
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	a := &app{
		cfg:           cfg,
		log:           log,
		stopMetricsCh: make(chan struct{}),
	}

	// Инициализируем метрики (если включены)
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	a.wrappedDB = dbmetrics.WrapWithDefault(db, a.metrics, a.stopMetricsCh)

	// Инициализируем репозитории
	a.practitioners = practitionerRepo.NewRepository(a.wrappedDB)
	a.patients = patientRepo.NewRepository(a.wrappedDB)
	a.timeSlots = timeSlotRepo.NewRepository(a.wrappedDB)
	a.availabilities = availabilityRepo.NewRepository(a.wrappedDB)
	a.appointments = appointmentRepo.NewRepository(a.wrappedDB)
	a.txManager = txmanager.NewTransactionManager(a.wrappedDB, cfg.Database.LockTimeout())

	// Инициализируем use cases
	a.generateAvailabilities, err = generateAvailabilitiesUC.NewUseCase(
		a.timeSlots,
		a.availabilities,
		a.appointments,
		a.txManager,
		a.metrics,
		generateAvailabilitiesUC.Options{
			SlotDuration: cfg.Scheduling.SlotDuration(),
			MaxExtension: cfg.Scheduling.MaxExtension(),
		},
		log,
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize availability generation: %w", err)
	}

	a.bookAppointment = bookAppointmentUC.NewUseCase(
		a.practitioners,
		a.patients,
		a.availabilities,
		a.appointments,
		a.txManager,
		a.metrics,
		log,
	)

	a.declareTimeSlot = declareTimeSlotUC.NewUseCase(
		a.practitioners,
		a.timeSlots,
		a.generateAvailabilities,
		a.txManager,
		log,
	)

	return a, nil
}

// Close останавливает сбор метрик пула и закрывает соединения
func (a *app) Close() {
	close(a.stopMetricsCh)
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	_ = a.log.Close()
}
