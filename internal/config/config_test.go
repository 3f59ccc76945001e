package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":8080" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":8080")
	}
	if cfg.HTTPAddr != ":8081" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8081")
	}
	if cfg.JWTIssuer != "dealership-auth" {
		t.Errorf("JWTIssuer = %q, want dealership-auth", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "dealership-api" {
		t.Errorf("JWTAudience = %q, want dealership-api", cfg.JWTAudience)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.OTPLifetime() != 5*time.Minute {
		t.Errorf("OTPLifetime = %v, want 5m", cfg.OTPLifetime())
	}
	if got := cfg.OTPDeliveryChannels(); !reflect.DeepEqual(got, []string{"log"}) {
		t.Errorf("OTPDeliveryChannels = %v, want [log]", got)
	}
	if cfg.OTPReturnToClient {
		t.Error("OTPReturnToClient should default to false")
	}
	if cfg.KafkaBrokersList() != nil {
		t.Errorf("KafkaBrokersList = %v, want nil", cfg.KafkaBrokersList())
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("OTP_DELIVERY", "Email, kafka")
	os.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":9090" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if got := cfg.OTPDeliveryChannels(); !reflect.DeepEqual(got, []string{"email", "kafka"}) {
		t.Errorf("OTPDeliveryChannels = %v", got)
	}
	if got := cfg.KafkaBrokersList(); !reflect.DeepEqual(got, []string{"a:9092", "b:9092"}) {
		t.Errorf("KafkaBrokersList = %v", got)
	}
}

func TestLoad_UnknownDeliveryChannel(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":8080")
	os.Setenv("OTP_DELIVERY", "log,pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject unknown OTP_DELIVERY channel")
	}
}

func TestLoad_BCRYPT_COSTRange(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		err   bool
	}{
		{"valid min", "4", 4, false},
		{"valid max", "31", 31, false},
		{"too low", "3", 0, true},
		{"too high", "32", 0, true},
		{"zero", "0", 12, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("GRPC_ADDR", ":8080")
			os.Setenv("BCRYPT_COST", tc.value)

			cfg, err := Load()
			if tc.err {
				if err == nil {
					t.Fatal("Load should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BcryptCost != tc.want {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tc.want)
			}
		})
	}
}

func TestLoad_OTPReturnToClientProduction(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":8080")
	os.Setenv("OTP_RETURN_TO_CLIENT", "true")
	os.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load should return error when OTP_RETURN_TO_CLIENT=true and APP_ENV=production")
	}
	if cfg != nil {
		t.Error("Load should return nil config on error")
	}
}

func TestDurations(t *testing.T) {
	testCases := []struct {
		name       string
		access     string
		otp        string
		wantAccess time.Duration
		wantOTP    time.Duration
	}{
		{"valid", "30m", "2m", 30 * time.Minute, 2 * time.Minute},
		{"invalid", "nope", "nope", 60 * time.Minute, 5 * time.Minute},
		{"zero", "0", "0", 60 * time.Minute, 5 * time.Minute},
		{"negative", "-5m", "-1m", 60 * time.Minute, 5 * time.Minute},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{JWTAccessTTL: tc.access, OTPTTL: tc.otp}
			if got := cfg.AccessTTL(); got != tc.wantAccess {
				t.Errorf("AccessTTL = %v, want %v", got, tc.wantAccess)
			}
			if got := cfg.OTPLifetime(); got != tc.wantOTP {
				t.Errorf("OTPLifetime = %v, want %v", got, tc.wantOTP)
			}
		})
	}
}

func TestDevOTPEnabled(t *testing.T) {
	testCases := []struct {
		env  string
		on   bool
		want bool
	}{
		{"development", true, true},
		{"", true, true},
		{"Production", true, false},
		{"development", false, false},
	}
	for _, tc := range testCases {
		cfg := &Config{Env: tc.env, OTPReturnToClient: tc.on}
		if got := cfg.DevOTPEnabled(); got != tc.want {
			t.Errorf("DevOTPEnabled(env=%q, on=%v) = %v, want %v", tc.env, tc.on, got, tc.want)
		}
	}
}
