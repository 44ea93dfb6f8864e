package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hr-portal/internal/blob"
	"hr-portal/internal/config"
	"hr-portal/internal/handler"
	"hr-portal/internal/i18n"
	"hr-portal/internal/job"
	"hr-portal/internal/mattermost"
	"hr-portal/internal/model"
	"hr-portal/internal/seed"
	"hr-portal/internal/service"
	"hr-portal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	i18n.Init(cfg.DefaultLocale)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Storage
	raw, err := store.Open(store.Options{
		Driver:        cfg.StoreDriver,
		SQLitePath:    cfg.SQLitePath,
		PostgresDSN:   cfg.PostgresDSN,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDB,
	})
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	backend := store.Instrument(raw, reg)
	defer backend.Close(context.Background())

	blobs, err := blob.Open(context.Background(), blob.Config{
		Driver:        cfg.BlobDriver,
		FSRoot:        cfg.BlobFSRoot,
		S3Bucket:      cfg.BlobS3Bucket,
		S3Region:      cfg.BlobS3Region,
		S3Endpoint:    cfg.BlobS3Endpoint,
		S3PathStyle:   cfg.BlobS3PathStyle,
		S3AccessKeyID: cfg.BlobS3AccessKey,
		S3SecretKey:   cfg.BlobS3SecretKey,
	})
	if err != nil {
		log.Fatalf("Failed to open %s blob store: %v", cfg.BlobDriver, err)
	}

	// Optional Mattermost channel notifications
	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		mm := mattermost.NewClient(cfg.MattermostURL, cfg.MattermostBotToken)
		notifier = mattermost.NewChannelNotifier(mm, cfg.MattermostChannelID)
		log.Printf("Mattermost notifications enabled for channel %s", cfg.MattermostChannelID)
	}

	// Stores
	userStore := store.NewUserStore(backend)
	attendanceStore := store.NewAttendanceStore(backend)
	leaveStore := store.NewLeaveStore(backend)
	documentStore := store.NewDocumentStore(backend)
	taskStore := store.NewTaskStore(backend)
	workLogStore := store.NewWorkLogStore(backend)
	messageStore := store.NewMessageStore(backend)
	chatStore := store.NewChatStore(backend)

	// Services
	clock := service.SystemClock(cfg.Location)
	authSvc := service.NewAuthService(userStore, cfg.JWTSecret, cfg.JWTTTL, clock)
	attendanceSvc, err := service.NewAttendanceService(attendanceStore, clock, cfg.LateCutoff)
	if err != nil {
		log.Fatalf("Invalid LATE_CUTOFF: %v", err)
	}
	leaveSvc := service.NewLeaveService(leaveStore, clock, notifier)
	documentSvc := service.NewDocumentService(documentStore, blobs, clock, notifier)
	taskSvc := service.NewTaskService(taskStore, clock, notifier)
	workLogSvc := service.NewWorkLogService(workLogStore, clock)
	messageSvc := service.NewMessageService(messageStore, authSvc, clock)
	chatSvc := service.NewChatService(chatStore, clock)

	if cfg.SeedDemoData {
		err := seed.Run(context.Background(), seed.Stores{
			Users:      userStore,
			Attendance: attendanceStore,
			Tasks:      taskStore,
			Messages:   messageStore,
			Chat:       chatStore,
		}, clock())
		if err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Nightly attendance close-out
	closer := job.NewAttendanceCloser(cfg.AttendanceCloseCron, cfg.Location, clock, authSvc, leaveSvc, attendanceSvc)
	if err := closer.Start(); err != nil {
		log.Fatalf("Failed to schedule attendance close-out: %v", err)
	}
	defer closer.Stop()

	// Routes
	auth := handler.NewAuth(authSvc)
	mux := http.NewServeMux()
	handler.NewAuthHandler(authSvc, messageSvc, auth, cfg.Env == "production").RegisterRoutes(mux)
	handler.NewAttendanceHandler(attendanceSvc, auth, clock).RegisterRoutes(mux)
	handler.NewLeaveHandler(leaveSvc, auth).RegisterRoutes(mux)
	handler.NewDocumentHandler(documentSvc, auth).RegisterRoutes(mux)
	handler.NewTaskHandler(taskSvc, authSvc, auth).RegisterRoutes(mux)
	handler.NewWorkLogHandler(workLogSvc, auth).RegisterRoutes(mux)
	handler.NewMessageHandler(messageSvc, authSvc, auth).RegisterRoutes(mux)
	handler.NewChatHandler(chatSvc, auth).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Health checks
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, _, err := backend.Get(ctx, model.UsersKey); err != nil {
			log.Printf("ERROR readiness check: %v", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewMiddleware(reg).Wrap(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("HR portal started on :%s (env: %s, store: %s, blobs: %s)", cfg.Port, cfg.Env, backend.Driver(), blobs.Driver())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
