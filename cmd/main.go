package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/cancel_appointment"
	confirmCodeHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/confirm_code"
	createDraftHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/create_draft"
	getAppointmentHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/get_appointment"
	getFreeSlotsHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/get_free_slots"
	issueCodeHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/issue_code"
	pollConfirmationHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/poll_confirmation"
	promoteDraftHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/promote_draft"
	verifyCodeHandler "github.com/aknyshev/salon-booking-engine/internal/api/handlers/verify_code"
	"github.com/aknyshev/salon-booking-engine/internal/api/middleware"
	"github.com/aknyshev/salon-booking-engine/internal/config"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/draftstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/otpstore"
	appointmentRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/appointment"
	clientRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/client"
	scheduleRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/schedule"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
	notifierClient "github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
	appointmentsService "github.com/aknyshev/salon-booking-engine/internal/service/appointments"
	draftsService "github.com/aknyshev/salon-booking-engine/internal/service/drafts"
	verificationService "github.com/aknyshev/salon-booking-engine/internal/service/verification"
	createDraftUC "github.com/aknyshev/salon-booking-engine/internal/usecase/create_draft"
	getFreeSlotsUC "github.com/aknyshev/salon-booking-engine/internal/usecase/get_free_slots"
	promoteDraftUC "github.com/aknyshev/salon-booking-engine/internal/usecase/promote_draft"
	"github.com/aknyshev/salon-booking-engine/pkg/keylock"
	"github.com/aknyshev/salon-booking-engine/pkg/logger"
	"github.com/aknyshev/salon-booking-engine/pkg/metrics"
	"github.com/aknyshev/salon-booking-engine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-engine...")

	// Счётчики домена: при выключенных метриках подставляем no-op,
	// чтобы не тащить условия по всем конструкторам
	type bookingMetrics interface {
		IncSlotsQuery()
		IncDraftCreated(source string)
		IncAppointmentCreated()
		IncSlotConflict()
		IncOTPIssued(method string)
		IncOTPVerified(method, result string)
	}
	var appMetrics bookingMetrics = metrics.NewNop()
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		appMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// TTL хранилище для черновиков и одноразовых кодов: Redis для
	// многоэкземплярного деплоя, in-process фолбэк для single-instance
	var kv kvstore.Store
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		kv = kvstore.NewRedisStore(redisClient)
		log.Info("Using redis TTL store at %s", cfg.Redis.Addr)
	} else {
		memStore := kvstore.NewMemoryStore().WithSweep(time.Minute)
		defer memStore.Stop()
		kv = memStore
		log.Warn("Redis disabled, using in-process TTL store: drafts and codes do not survive restarts and are not shared across instances")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(db)
	scheduleRepository := scheduleRepo.NewRepository(db)
	serviceRepository := serviceRepo.NewRepository(db)
	clientRepository := clientRepo.NewRepository(db)

	txMgr := txmanager.New(db)
	masterLock := keylock.New()

	// Интеграционный клиент сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)

	// Инициализируем сервисы
	draftSvc := draftsService.NewService(
		draftstore.New(kv),
		draftsService.TTLConfig{
			Direct:    cfg.Booking.DraftTTL("direct"),
			SmsOTP:    cfg.Booking.DraftTTL("sms_otp"),
			Telegram:  cfg.Booking.DraftTTL("telegram_otp"),
			QuickAuth: cfg.Booking.DraftTTL("quick_auth"),
		},
		log,
	)
	otpStore := otpstore.New(kv)
	verificationSvc := verificationService.NewService(
		otpStore,
		draftSvc,
		notifier,
		appMetrics,
		log,
		cfg.Booking.OTPTTL(),
		cfg.Booking.OTPCodeLength,
	)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		serviceRepository,
		getFreeSlotsUC.Config{
			StepMinutes:   cfg.Booking.SlotStepMinutes,
			BufferMinutes: cfg.Booking.BufferMinutes,
		},
		appMetrics,
		log,
	)
	createDraftUseCase := createDraftUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		draftSvc,
		appMetrics,
		log,
	)
	promoteDraftUseCase := promoteDraftUC.NewUseCase(
		appointmentRepository,
		clientRepository,
		serviceRepository,
		draftSvc,
		otpStore,
		txMgr,
		masterLock,
		notifier,
		appMetrics,
		log,
	)

	// Инициализируем handlers
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, cfg.Booking.Timezone, log)
	createDraft := createDraftHandler.NewHandler(createDraftUseCase, log)
	issueCode := issueCodeHandler.NewHandler(verificationSvc, log)
	verifyCode := verifyCodeHandler.NewHandler(verificationSvc, log)
	confirmCode := confirmCodeHandler.NewHandler(verificationSvc, log)
	pollConfirmation := pollConfirmationHandler.NewHandler(verificationSvc, log)
	promoteDraft := promoteDraftHandler.NewHandler(promoteDraftUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступность
	api.HandleFunc("/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Флоу бронирования
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/code", issueCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/verify", verifyCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/confirm", confirmCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{draftId}/confirmation", pollConfirmation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftId}/promote", promoteDraft.Handle).Methods(http.MethodPost)

	// Записи
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
