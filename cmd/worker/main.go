// Worker consumes OTP delivery messages from Kafka and sends them by email and/or SMS.
// Set KAFKA_BROKERS, OTP_KAFKA_TOPIC, KAFKA_GROUP_ID, DATABASE_URL and OTP_DELIVERY (email, sms).
// GRPC_ADDR is required by config but unused.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"dealership-backoffice/internal/config"
	"dealership-backoffice/internal/otp/delivery"
	"dealership-backoffice/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("worker: KAFKA_BROKERS is required")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("worker: DATABASE_URL is required to resolve recipients")
	}
	backend, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("worker: db: %v", err)
	}
	defer backend.Close()

	var channels delivery.Fanout
	for _, ch := range cfg.OTPDeliveryChannels() {
		switch ch {
		case "email":
			channels = append(channels, delivery.NewEmail(backend.Users, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom))
		case "sms":
			channels = append(channels, delivery.NewSMSLocal(backend.Users, cfg.SMSLocalAPIKey, cfg.SMSLocalBaseURL, cfg.SMSLocalSender))
		}
	}
	if len(channels) == 0 {
		log.Fatal("worker: OTP_DELIVERY must include email or sms")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          cfg.OTPKafkaTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       1e6,
		MaxWait:        time.Second,
		CommitInterval: time.Second,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("worker: shutting down...")
		cancel()
	}()

	ttl := cfg.OTPLifetime()
	log.Printf("worker: consuming from %s (group %s)", cfg.OTPKafkaTopic, cfg.KafkaGroupID)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("worker: stopped")
				return
			}
			log.Printf("worker: kafka read error: %v", err)
			continue
		}

		m, err := delivery.Decode(msg.Value)
		if err != nil {
			log.Printf("worker: dropping offset %d: %v", msg.Offset, err)
			continue
		}
		if m.Expired(time.Now().UTC(), ttl) {
			log.Printf("worker: dropping expired %s code for user %s", m.Purpose, m.UserID)
			continue
		}
		sendCtx, sendCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := channels.Deliver(sendCtx, m.UserID, m.Code, m.Purpose); err != nil {
			log.Printf("worker: deliver %s code to user %s: %v", m.Purpose, m.UserID, err)
		}
		sendCancel()
	}
}
