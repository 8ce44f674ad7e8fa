//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"coupon-service/cmd/bootstrap"
	"coupon-service/cmd/bootstrap/components"
	"coupon-service/internal/handler"
	"coupon-service/internal/handler/api"
	"coupon-service/internal/infra/db"
	"coupon-service/internal/infra/mail"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"
	"coupon-service/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Per-test-process environment setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *redis.Client, *gin.Engine, config.Config, *CapturingPublisher) {
	postgresInfo, redisInfo := startContainers(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)
	redisAddr := fmt.Sprintf("%s:%s", redisInfo.Host, redisInfo.Port.Port())

	router, rdb, cfg, publisher, app := buildE2EApp(pool, dbConfig, redisAddr)
	require.NotNil(t, router, "failed to set up router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	slog.Info("e2e environment ready",
		"postgres_host", postgresInfo.Host,
		"postgres_port", postgresInfo.Port.Port(),
		"redis_addr", redisAddr)

	return pool, rdb, router, cfg, publisher
}

// ------------------------------------------------------------
// Container startup
// ------------------------------------------------------------
func startContainers(t *testing.T) (ContainerInfo, ContainerInfo) {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)
	startRedisContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to get postgres container info")

	redisInfo, err := getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to get redis container info")

	return postgresInfo, redisInfo
}

// ------------------------------------------------------------
// Database preparation
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	// one database per test process
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to open admin connection")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := time.Duration(500+attempts*500) * time.Millisecond
			waitTime = min(waitTime, 3*time.Second)
			time.Sleep(waitTime)
			slog.Warn("retrying test database creation", "attempt", attempts+1, "error", createErr.Error())
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to open cleanup connection", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to test database")
	require.NotNil(t, pool, "database pool is nil")

	err = applyMigrations(t, dbConfig)
	require.NoError(t, err, "failed to apply migrations")

	return pool, dbConfig
}

func applyMigrations(t *testing.T, dbConfig config.DBConfig) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, _, err := db.Connect(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	migrationFiles := []string{
		"migrations/001_initial_schema.sql",
	}

	for _, file := range migrationFiles {
		// Resolve migration file path relative to possible working dirs (package dirs during `go test`).
		var (
			sqlContent []byte
			readErr    error
		)
		candidates := []string{
			file, // repo root
			filepath.Join("..", file),
			filepath.Join("..", "..", file),
			filepath.Join("..", "..", "..", file),
		}
		for _, cand := range candidates {
			sqlContent, readErr = os.ReadFile(cand)
			if readErr == nil {
				file = cand
				break
			}
		}
		if readErr != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, readErr)
		}

		if _, err = pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}

// ------------------------------------------------------------
// Application assembly for e2e tests
//
// The Kafka side is replaced with in-process stubs: the synchronous admission
// path under test never consumes from the broker, and the async pipeline is
// covered by the unit tests against the processor. Postgres and Redis are real.
// ------------------------------------------------------------

// CapturingPublisher records published events instead of talking to a broker.
type CapturingPublisher struct {
	mu        sync.Mutex
	issuances []stream.IssuanceRequest
	usages    []stream.UsageEvent
}

func (p *CapturingPublisher) PublishIssuance(_ context.Context, req stream.IssuanceRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issuances = append(p.issuances, req)
	return nil
}

func (p *CapturingPublisher) PublishUsage(_ context.Context, event stream.UsageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usages = append(p.usages, event)
	return nil
}

func (p *CapturingPublisher) Issuances() []stream.IssuanceRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]stream.IssuanceRequest(nil), p.issuances...)
}

func (p *CapturingPublisher) Usages() []stream.UsageEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]stream.UsageEvent(nil), p.usages...)
}

func (p *CapturingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issuances = nil
	p.usages = nil
}

type staticTopicInspector struct{}

func (staticTopicInspector) TopicInfo(string) ([]stream.PartitionInfo, error) {
	return []stream.PartitionInfo{{Partition: 0, Leader: "broker-0", Replicas: []string{"broker-0"}}}, nil
}

func buildE2EApp(pool *pgxpool.Pool, dbConfig config.DBConfig, redisAddr string) (*gin.Engine, *redis.Client, config.Config, *CapturingPublisher, *fx.App) {
	var router *gin.Engine
	var rdb *redis.Client
	var cfg config.Config

	testDBModule := fx.Module("testdb",
		fx.Provide(func() *pgxpool.Pool { return pool }),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			return createTestConfig(dbConfig, redisAddr)
		}),
	)

	publisher := &CapturingPublisher{}

	testUseCaseModule := fx.Module("testusecase",
		fx.Provide(
			clock.NewRealClock,
			func(p *pgxpool.Pool) commands.TxBeginner { return p },
			func(s *redisstore.ReservationStore) commands.Reserver { return s },
			func(m *redisstore.LockManager) commands.Locker { return m },
			func() commands.Publisher { return publisher },
			func(c config.Config) commands.Notifier { return mail.NewSender(c.Mail) },
			components.NewAdmissionStrategy,
			commands.NewIssuanceUseCase,
			commands.NewUsageUseCase,
			commands.NewCampaignUseCase,
			queries.NewCampaignQueries,
			queries.NewGrantQueries,
		),
	)

	testHandlerModule := fx.Module("testhandler",
		fx.Provide(
			api.NewCouponHandler,
			func() api.TopicInspector { return staticTopicInspector{} },
			api.NewAdminHandler,
		),
		fx.Invoke(handler.NewRouter),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.RedisModule,
		components.RepositoryModule,
		testUseCaseModule,
		testHandlerModule,

		fx.Populate(&router, &rdb, &cfg),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("fx application started without a router")
	}

	return router, rdb, cfg, publisher, app
}

func createTestConfig(dbConfig config.DBConfig, redisAddr string) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	testConfig.Redis.Addr = redisAddr
	return testConfig
}

// ------------------------------------------------------------
// Generic container helpers
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Name:   "postgres-e2e",
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start postgres container")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate postgres container", "error", err.Error())
				}
			}
		})
	})
}

func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Name:         "redis-e2e",
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 60)
		require.NoError(t, err, "failed to start redis container")

		t.Cleanup(func() {
			if redisTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := redisTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate redis container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite setup for e2e test packages
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router    *gin.Engine
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Config    config.Config
	Publisher *CapturingPublisher
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	db, rdb, router, cfg, publisher := setupE2EEnvironment(t)
	s.DB = db
	s.Redis = rdb
	s.Router = router
	s.Config = cfg
	s.Publisher = publisher
	require.NotNil(t, db, "failed to set up database")
	require.NotNil(t, rdb, "failed to set up redis client")
	require.NotNil(t, s.Router, "failed to set up router")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	// Reset mutable state between subtests: ledger tables and the reservation
	// counters/markers in Redis.
	err := dbtest.ResetDB(s.DB)
	require.NoError(s.T(), err, "failed to reset database state")

	err = s.Redis.FlushDB(context.Background()).Err()
	require.NoError(s.T(), err, "failed to flush redis state")

	s.Publisher.Reset()
}
