package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"gopkg.in/gomail.v2"

	"dealership-backoffice/internal/otp/domain"
	userdomain "dealership-backoffice/internal/user/domain"
)

type fakeUsers map[string]*userdomain.User

func (f fakeUsers) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	return f[id], nil
}

var users = fakeUsers{
	"u1": {ID: "u1", Email: "jane@example.com", Phone: "+91 98765-43210"},
	"u2": {ID: "u2"},
}

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestEmail_Deliver(t *testing.T) {
	s := &fakeSender{}
	e := NewEmailWithSender(users, s, "noreply@dealer.test")
	if err := e.Deliver(context.Background(), "u1", "123456", domain.PurposePurchase); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(s.sent))
	}
	m := s.sent[0]
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "jane@example.com" {
		t.Errorf("To = %v", got)
	}
	if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != "Confirm your purchase request" {
		t.Errorf("Subject = %v", got)
	}
}

func TestEmail_Errors(t *testing.T) {
	e := NewEmailWithSender(users, &fakeSender{}, "x")
	if err := e.Deliver(context.Background(), "u2", "123456", domain.PurposeLogin); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("no email err = %v, want ErrNoRecipient", err)
	}
	if err := e.Deliver(context.Background(), "missing", "123456", domain.PurposeLogin); err == nil {
		t.Error("unknown user should fail")
	}
	failing := NewEmailWithSender(users, &fakeSender{err: errors.New("535 auth")}, "x")
	if err := failing.Deliver(context.Background(), "u1", "123456", domain.PurposeLogin); err == nil {
		t.Error("transport failure should surface")
	}
}

func TestSMSLocal_Deliver(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewSMSLocal(users, "key", server.URL, "DEALER")
	if err := c.Deliver(context.Background(), "u1", "654321", domain.PurposeLogin); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if got["numbers"] != "919876543210" || got["variables"] != "654321" || got["route"] != "otp" {
		t.Errorf("payload = %v", got)
	}
	if got["sender_id"] != "DEALER" {
		t.Errorf("sender_id = %v", got["sender_id"])
	}
}

func TestSMSLocal_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer server.Close()

	c := NewSMSLocal(users, "key", server.URL, "")
	err := c.Deliver(context.Background(), "u1", "654321", domain.PurposeLogin)
	if err == nil || !strings.Contains(err.Error(), "status=402") {
		t.Errorf("err = %v, want status=402", err)
	}
	if err := c.Deliver(context.Background(), "u2", "654321", domain.PurposeLogin); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("no phone err = %v", err)
	}
	if err := NewSMSLocal(users, "", server.URL, "").SendOTP(context.Background(), "1", "1"); err == nil {
		t.Error("missing API key should fail")
	}
	if NewSMSLocal(users, "k", "", "").BaseURL == "" {
		t.Error("BaseURL should default")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestKafka_RoundTrip(t *testing.T) {
	w := &fakeWriter{}
	k := NewKafkaWithWriter(w)
	if err := k.Deliver(context.Background(), "u1", "111222", domain.PurposeRegister); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "u1" {
		t.Fatalf("messages = %+v", w.msgs)
	}
	m, err := Decode(w.msgs[0].Value)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.UserID != "u1" || m.Code != "111222" || m.Purpose != domain.PurposeRegister {
		t.Errorf("decoded = %+v", m)
	}
	if m.Expired(m.CreatedAt.Add(4*time.Minute), 5*time.Minute) {
		t.Error("message should not be expired within ttl")
	}
	if !m.Expired(m.CreatedAt.Add(6*time.Minute), 5*time.Minute) {
		t.Error("message should be expired after ttl")
	}
}

func TestKafka_NilSafe(t *testing.T) {
	if NewKafka(nil, "topic") != nil {
		t.Fatal("NewKafka without brokers should return nil")
	}
	var k *Kafka
	if err := k.Deliver(context.Background(), "u", "1", domain.PurposeLogin); err != nil {
		t.Errorf("nil Deliver: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{`not json`, `{}`, `{"user_id":"u","code":"1","purpose":"refund"}`} {
		if _, err := Decode([]byte(raw)); err == nil {
			t.Errorf("Decode(%s) should fail", raw)
		}
	}
}

type stub struct {
	calls int
	err   error
}

func (s *stub) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	s.calls++
	return s.err
}

func TestFanout(t *testing.T) {
	a, b := &stub{err: errors.New("a failed")}, &stub{}
	err := Fanout{a, b, Log{}}.Deliver(context.Background(), "u1", "123456", domain.PurposeLogin)
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls, b.calls)
	}
	if err == nil || !strings.Contains(err.Error(), "a failed") {
		t.Errorf("err = %v, want joined failure", err)
	}
}
