package main

import (
	"context"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"dealership-backoffice/internal/audit"
	"dealership-backoffice/internal/config"
	"dealership-backoffice/internal/devotp"
	devotphandler "dealership-backoffice/internal/devotp/handler"
	"dealership-backoffice/internal/httpapi"
	identityservice "dealership-backoffice/internal/identity/service"
	"dealership-backoffice/internal/otp/delivery"
	otpservice "dealership-backoffice/internal/otp/service"
	"dealership-backoffice/internal/policy/engine"
	purchaseservice "dealership-backoffice/internal/purchase/service"
	"dealership-backoffice/internal/ratelimit"
	"dealership-backoffice/internal/security"
	"dealership-backoffice/internal/server"
	"dealership-backoffice/internal/server/interceptors"
	"dealership-backoffice/internal/store"
	"dealership-backoffice/internal/telemetry"
	otelsetup "dealership-backoffice/internal/telemetry/otel"
	"dealership-backoffice/internal/telemetry/producer"
	vehicleservice "dealership-backoffice/internal/vehicle/service"
)

const serviceName = "dealership-backoffice"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()
	decimal.MarshalJSONWithoutQuotes = true

	backend, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer backend.Close()
	if backend.InMemory {
		if cfg.IsProduction() {
			log.Fatal("DATABASE_URL is required when APP_ENV=production")
		}
		log.Println("DATABASE_URL not set; using the in-memory store (data is lost on exit)")
	}

	signer, pub, ephemeral, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt keys: %v", err)
	}
	if ephemeral {
		if cfg.IsProduction() {
			log.Fatal("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required when APP_ENV=production")
		}
		log.Println("JWT keys not set; using an ephemeral key pair (tokens do not survive a restart)")
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())

	authz, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		log.Fatalf("policy: %v", err)
	}

	providers, err := otelsetup.NewProviders(ctx, otelsetup.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: serviceName,
		Environment: cfg.Env,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	var closers []io.Closer
	emitters := []telemetry.EventEmitter{otelsetup.NewEventEmitter(providers.LoggerProvider)}
	if p := producer.FromConfig(cfg.KafkaBrokersList(), cfg.TelemetryKafkaTopic); p != nil {
		emitters = append(emitters, p)
		closers = append(closers, p)
	}
	emitter := telemetry.Multi(emitters...)

	var devStore *devotp.MemoryStore
	if cfg.DevOTPEnabled() {
		devStore = devotp.NewMemoryStore(cfg.OTPLifetime())
		log.Println("OTP_RETURN_TO_CLIENT enabled; DevService/GetOTP exposes codes (development only)")
	}
	notifier, notifierClosers := buildNotifier(cfg, backend, devStore)
	closers = append(closers, notifierClosers...)

	otpOpts := []otpservice.Option{otpservice.WithNotifier(notifier), otpservice.WithTTL(cfg.OTPLifetime())}
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.Dial(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		closers = append(closers, rdb)
		otpOpts = append(otpOpts, otpservice.WithLimiter(ratelimit.NewRedisLimiter(rdb, ratelimit.DefaultPerHour)))
	}
	otps := otpservice.NewService(backend.OTPs, backend.Tx, otpOpts...)

	auditLogger := audit.NewLogger(backend.Audit, interceptors.ClientIP)
	deps := server.Deps{
		Auth:                identityservice.NewAuthService(backend.Users, otps, security.NewHasher(cfg.BcryptCost), tokens),
		Vehicles:            vehicleservice.NewService(backend.Vehicles, backend.Purchases, otps, backend.Tx),
		Purchases:           purchaseservice.NewService(backend.Purchases, backend.Vehicles, backend.Users, otps, backend.Tx),
		OTPs:                otps,
		Authz:               authz,
		AuditRepo:           backend.Audit,
		AuditLogger:         auditLogger,
		HealthPinger:        backend.Pinger,
		HealthPolicyChecker: authz,
	}
	if devStore != nil {
		deps.DevOTPHandler = devotphandler.NewServer(devStore)
	}
	handlers := server.NewHandlers(deps)
	interceptor := server.Interceptor(tokens, auditLogger, emitter)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptor),
	)
	server.RegisterServices(s, handlers)

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	app := httpapi.New(handlers, interceptor)
	if cfg.HTTPAddr != "" {
		go func() {
			log.Printf("HTTP gateway listening on %s", cfg.HTTPAddr)
			if err := app.Listen(cfg.HTTPAddr); err != nil {
				log.Fatalf("http: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	if cfg.HTTPAddr != "" {
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}
	s.GracefulStop()
	otps.Wait()
	if !telemetry.Drain() {
		log.Println("telemetry: drain timed out")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}
	log.Println("server stopped")
}

// buildNotifier returns the configured delivery channels as one notifier, plus whatever
// must be closed on shutdown.
func buildNotifier(cfg *config.Config, backend *store.Backend, dev *devotp.MemoryStore) (delivery.Notifier, []io.Closer) {
	var (
		fanout  delivery.Fanout
		closers []io.Closer
	)
	for _, ch := range cfg.OTPDeliveryChannels() {
		switch ch {
		case "log":
			if cfg.IsProduction() {
				log.Println("otp: log delivery ignored when APP_ENV=production")
				continue
			}
			fanout = append(fanout, delivery.Log{})
		case "email":
			fanout = append(fanout, delivery.NewEmail(backend.Users, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom))
		case "sms":
			fanout = append(fanout, delivery.NewSMSLocal(backend.Users, cfg.SMSLocalAPIKey, cfg.SMSLocalBaseURL, cfg.SMSLocalSender))
		case "kafka":
			k := delivery.NewKafka(cfg.KafkaBrokersList(), cfg.OTPKafkaTopic)
			if k == nil {
				log.Fatal("otp: kafka delivery needs KAFKA_BROKERS and OTP_KAFKA_TOPIC")
			}
			fanout = append(fanout, k)
			closers = append(closers, k)
		}
	}
	if dev != nil {
		fanout = append(fanout, dev)
	}
	if len(fanout) == 0 {
		log.Println("otp: no delivery channel configured; codes are not sent")
	}
	return fanout, closers
}
