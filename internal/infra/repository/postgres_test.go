package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// ICE_TEST_DATABASE_DSN aponta para um postgres já disponível;
// sem ela os testes sobem um container.
const testDSNEnv = "ICE_TEST_DATABASE_DSN"

var (
	pgOnce      sync.Once
	pgDB        *gorm.DB
	pgErr       error
	pgContainer *tcpostgres.PostgresContainer
)

func TestMain(m *testing.M) {
	code := m.Run()

	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func startPostgres() (*gorm.DB, error) {
	ctx := context.Background()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("ice_routes"),
			tcpostgres.WithUsername("ice"),
			tcpostgres.WithPassword("ice"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(90*time.Second),
			),
		)
		if err != nil {
			return nil, err
		}
		pgContainer = c

		dsn, err = c.ConnectionString(ctx, "sslmode=disable", "TimeZone=UTC")
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newTestDB devolve o banco de teste limpo, só com rotas e produtos.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests skipped in -short mode")
	}
	if os.Getenv(testDSNEnv) == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	pgOnce.Do(func() {
		pgDB, pgErr = startPostgres()
	})
	require.NoError(t, pgErr)

	require.NoError(t, pgDB.Exec(`TRUNCATE
		routes, drivers, products, clients, client_route_schedules, client_prices,
		extemporaneous_assignments, route_assignments, orders, order_items,
		tracking_states, inventory_snapshots, inventory_items, credit_ledger_entries,
		cash_outflows, daily_jobs, audit_logs, operators
		RESTART IDENTITY CASCADE`).Error)
	require.NoError(t, dbpkg.Seed(pgDB))

	return pgDB
}

// ======================================================
// FIXTURES
// ======================================================

func createClient(t *testing.T, db *gorm.DB, c models.Client) {
	t.Helper()
	require.NoError(t, db.Create(&c).Error)
}

func onMondays(routeID string) models.ClientRouteSchedule {
	return models.ClientRouteSchedule{RouteID: routeID, Monday: true}
}

func createDriver(t *testing.T, db *gorm.DB) *models.Driver {
	t.Helper()
	d := &models.Driver{Name: "Juan Pérez", Active: true}
	require.NoError(t, db.Create(d).Error)
	return d
}
