package influxdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/doingharm/go-joystick-events/internal/config"
)

// fakeServer answers /ping and records write bodies.
type fakeServer struct {
	*httptest.Server
	mu     sync.Mutex
	writes []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	s := &fakeServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/write") {
			body, _ := io.ReadAll(r.Body)
			s.mu.Lock()
			s.writes = append(s.writes, string(body))
			s.mu.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *fakeServer) Writes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.writes, "\n")
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled: true,
		URL:     url,
		Token:   "token",
		Org:     "home",
		Bucket:  "joystick",
	}
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	s := newFakeServer(t)
	url := s.URL
	s.Close()

	_, err := Connect(testConfig(url))
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestClient_WriteAndClose(t *testing.T) {
	s := newFakeServer(t)

	c, err := Connect(testConfig(s.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := c.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v", err)
	}

	c.WriteJoystickEvent(JoystickEvent{JoystickID: "pan-tilt", Kind: "changed", X: 2})
	if err := c.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	if got := s.Writes(); !strings.Contains(got, "joystick_events,joystick_id=pan-tilt,kind=changed") {
		t.Errorf("written body = %q, want the event point", got)
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after Close")
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() after Close = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheck_ServerGone(t *testing.T) {
	s := newFakeServer(t)

	c, err := Connect(testConfig(s.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	s.Close()
	if err := c.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() = nil with the server gone")
	}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.InfluxDBConfig
		wantBatch uint
		wantFlush uint
	}{
		{"defaults", config.InfluxDBConfig{}, defaultBatchSize, 10000},
		{"configured", config.InfluxDBConfig{BatchSize: 5, FlushInterval: 2}, 5, 2000},
		{"negative", config.InfluxDBConfig{BatchSize: -1, FlushInterval: -1}, defaultBatchSize, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := clientOptions(tt.cfg)
			if opts.BatchSize() != tt.wantBatch {
				t.Errorf("BatchSize() = %d, want %d", opts.BatchSize(), tt.wantBatch)
			}
			if opts.FlushInterval() != tt.wantFlush {
				t.Errorf("FlushInterval() = %d, want %d", opts.FlushInterval(), tt.wantFlush)
			}
		})
	}
}

func TestDisconnectedClient(t *testing.T) {
	c := &Client{}

	if c.IsConnected() {
		t.Error("zero Client reports connected")
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() = %v, want ErrNotConnected", err)
	}
	// must not panic without a write API
	c.WriteJoystickEvent(JoystickEvent{JoystickID: "a", Kind: "changed"})
	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestNewEventPoint(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	p := newEventPoint(JoystickEvent{
		JoystickID: "pan-tilt",
		Kind:       "idle",
		X:          -3,
		Y:          2,
		UserState:  7,
		Idle:       true,
		Time:       ts,
	})

	line := write.PointToLineProtocol(p, time.Second)

	if !strings.HasPrefix(line, "joystick_events,joystick_id=pan-tilt,kind=idle ") {
		t.Errorf("line = %q, want measurement and tags prefix", line)
	}
	for _, want := range []string{"x=-3i", "y=2i", "user_state=7i", "idle=true", " 1700000000"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestNewEventPoint_DefaultsTime(t *testing.T) {
	before := time.Now()
	p := newEventPoint(JoystickEvent{JoystickID: "a", Kind: "changed"})
	if p.Time().Before(before) {
		t.Errorf("point time %v predates %v", p.Time(), before)
	}
}
