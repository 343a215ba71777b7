package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createTimeSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_time_slot"
	generateAvailabilitiesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_availabilities"
	getAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointments"
	getAvailabilitiesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availabilities"
	getPatientsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_patients"
	getPractitionerAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_practitioner_appointments"
	getPractitionersHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_practitioners"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/timeslotevents"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilitiesService "github.com/m04kA/SMC-AppointmentService/internal/service/availabilities"
	directoryService "github.com/m04kA/SMC-AppointmentService/internal/service/directory"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the optional time slot events consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrateUp {
				if err := migrations.Up(cmd.Context(), a.wrappedDB); err != nil {
					a.log.Error("Migration failed: %v", err)
					return err
				}
				a.log.Info("Database schema is up to date")
			}

			return serve(cmd.Context(), a)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")

	return cmd
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	log := a.log

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Starting SMC-AppointmentService...")

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(a.appointments, log)
	availabilitiesSvc := availabilitiesService.NewService(a.availabilities, log)
	directorySvc := directoryService.NewService(a.practitioners, a.patients, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(a.bookAppointment, log)
	generateAvailabilities := generateAvailabilitiesHandler.NewHandler(a.generateAvailabilities, log)
	createTimeSlot := createTimeSlotHandler.NewHandler(a.declareTimeSlot, log)
	getAvailabilities := getAvailabilitiesHandler.NewHandler(availabilitiesSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getPractitionerAppointments := getPractitionerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getPractitioners := getPractitionersHandler.NewHandler(directorySvc, log)
	getPatients := getPatientsHandler.NewHandler(directorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты запросов через Redis
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}

		// Validate уже проверил адреса
		proxies, _ := cfg.RateLimit.TrustedProxies()
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window(), proxies, log)
		api.Use(limiter.Middleware(cfg.RateLimit.FailOpen))
		log.Info("Rate limiting enabled: %d requests per %ds (fail_open=%t, trusted_proxies=%d)",
			cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds, cfg.RateLimit.FailOpen, len(proxies))
	}

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{practitionerId}", getPractitionerAppointments.Handle).Methods(http.MethodGet)

	// --- Слоты ---
	api.HandleFunc("/availabilities", getAvailabilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/practitioners/{practitionerId}/availabilities/generate",
		generateAvailabilities.Handle).Methods(http.MethodPost)

	// --- Рабочие окна ---
	api.HandleFunc("/practitioners/{practitionerId}/time-slots", createTimeSlot.Handle).Methods(http.MethodPost)

	// --- Справочники ---
	api.HandleFunc("/practitioners", getPractitioners.Handle).Methods(http.MethodGet)
	api.HandleFunc("/patients", getPatients.Handle).Methods(http.MethodGet)

	// Consumer событий об изменении рабочих окон
	consumerDone := make(chan struct{})
	if cfg.Kafka.Enabled {
		reader := timeslotevents.NewReader(timeslotevents.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		consumer := timeslotevents.NewConsumer(reader, a.generateAvailabilities, log)
		go func() {
			defer close(consumerDone)
			consumer.Run(ctx)
		}()
		log.Info("Kafka consumer started (topic=%s, group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
	} else {
		close(consumerDone)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("Server failed to start: %v", err)
		cancel()
		<-consumerDone
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	<-consumerDone
	log.Info("Server stopped gracefully")
	return nil
}
