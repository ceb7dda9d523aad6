package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2beens/lejogtracker/internal"
	"github.com/2beens/lejogtracker/internal/config"

	"github.com/stretchr/testify/suite"
)

const serverHost = "127.0.0.1"

// Define the suite, and absorb the built-in basic suite
// functionality from testify - including a T() method which
// returns the current testing context
type TrackerTestSuite struct {
	suite.Suite

	strava         *fakeStrava
	server         *internal.Server
	cfg            *config.Config
	serverEndpoint string
	metricsURL     string
	httpClient     *http.Client
	teardown       []func()
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestTrackerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping tracker service suite in short mode")
	}
	suite.Run(t, new(TrackerTestSuite))
}

// runs before all tests are executed
func (s *TrackerTestSuite) SetupSuite() {
	fmt.Println("setting up test suite...")

	s.teardown = make([]func(), 0)
	s.httpClient = &http.Client{Timeout: 10 * time.Second}

	s.strava = newFakeStrava()
	stravaServer := httptest.NewServer(s.strava)
	s.teardown = append(s.teardown, stravaServer.Close)
	fmt.Println("fake strava started")

	port, err := freePort()
	s.Require().NoError(err)
	metricsPort, err := freePort()
	s.Require().NoError(err)

	s.cfg, err = getTestConfig(
		filepath.Join(s.T().TempDir(), "data", "strava-activities.json"),
		stravaServer.URL,
		port,
		metricsPort,
	)
	s.Require().NoError(err)

	s.serverEndpoint = fmt.Sprintf("http://%s", net.JoinHostPort(serverHost, strconv.Itoa(port)))
	s.metricsURL = fmt.Sprintf("http://%s/metrics", net.JoinHostPort(serverHost, strconv.Itoa(metricsPort)))

	s.server, err = internal.NewServer(internal.NewServerParams{
		Config: s.cfg,
		Secrets: &config.Secrets{
			ClientID:     testClientID,
			ClientSecret: testClientSecret,
			RefreshToken: testRefreshToken,
		},
	})
	s.Require().NoError(err)
	fmt.Println("server created")

	s.server.Serve(context.Background(), s.cfg.Host, s.cfg.Port)
	s.Require().NoError(waitForServer(s.serverEndpoint+"/tracker/sync/status", 5*time.Second))
	fmt.Println("server started")
}

func (s *TrackerTestSuite) TearDownSuite() {
	fmt.Println(" --> cleaning up test suite...")
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	fmt.Println(" --> test suite server shut down")
	for _, teardown := range s.teardown {
		teardown()
	}
	fmt.Println(" --> test suite cleanup done")
}

func getTestConfig(snapshotPath, stravaURL string, port, metricsPort int) (*config.Config, error) {
	t := config.Toml{
		Development: &config.Config{
			Host:                  serverHost,
			Port:                  port,
			LogLevel:              "warn",
			LogToStdout:           true,
			PrometheusMetricsHost: serverHost,
			PrometheusMetricsPort: strconv.Itoa(metricsPort),
			SnapshotPath:          snapshotPath,
			SyncEnabled:           true,
			SyncInterval:          config.Duration{Duration: time.Hour},
			ViewRefreshInterval:   config.Duration{Duration: 50 * time.Millisecond},
			Strava: config.StravaConfig{
				TokenURL:   stravaURL + "/oauth/token",
				APIBaseURL: stravaURL + "/api/v3",
			},
			Journey: config.JourneyConfig{
				StartDate:       testStartDate,
				TotalDistanceKm: 1407,
				WeeklyTargetKm:  27,
				Timezone:        "Europe/London",
			},
		},
	}
	return t.Resolve("dev")
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(serverHost, "0"))
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func waitForServer(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not up after %s", url, timeout)
}

func (s *TrackerTestSuite) getJSON(path string, target any) int {
	resp, err := s.httpClient.Get(s.serverEndpoint + path)
	s.Require().NoError(err)
	defer resp.Body.Close()
	if target != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

// fakeStrava serves the token and activity list endpoints.
type fakeStrava struct {
	mux            *http.ServeMux
	tokenCalls     atomic.Int32
	activityCalls  atomic.Int32
	rejectRefresh  atomic.Bool
	lastAfterParam atomic.Value
}

func (f *fakeStrava) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mux.ServeHTTP(w, r)
}
