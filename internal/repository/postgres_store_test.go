package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osa911/portfolio-api/internal/models"
)

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error
)

// setupPostgres starts one PostgreSQL container for the package run, applies
// migrations and returns a store with empty tables.
func setupPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	pgOnce.Do(func() {
		pgDSN, pgErr = startPostgres()
	})
	if pgErr != nil {
		t.Skipf("postgres container unavailable: %v", pgErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := OpenPostgres(ctx, pgDSN)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.DB().ExecContext(ctx, "TRUNCATE contacts, service_inquiries, users")
	require.NoError(t, err)

	return store
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}

	return dsn, nil
}

func TestPostgresStore_ContactsRoundTrip(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	first, err := store.CreateContact(ctx, models.NewContact{
		Name: "A", Email: "a@x.com", ProjectDescription: "Build a site", Service: strp("website-dev"),
	})
	require.NoError(t, err)

	second, err := store.CreateContact(ctx, models.NewContact{
		Name: "B", Email: "b@x.com", ProjectDescription: "App", Budget: strp("custom"), CustomBudget: strp("₹75,000"),
	})
	require.NoError(t, err)

	list, err := store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, second, list[0])
	assert.Equal(t, first, list[1])
	assert.Nil(t, list[1].Country)
}

func TestPostgresStore_ServiceInquiriesRoundTrip(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	q, err := store.CreateServiceInquiry(ctx, models.NewServiceInquiry{Name: "A", Email: "a@x.com", Service: "seo"})
	require.NoError(t, err)

	list, err := store.ListServiceInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, q, list[0])
	assert.Nil(t, list[0].Message)
}

func TestPostgresStore_Users(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, models.NewUser{Username: "admin", Password: "hash"})
	require.NoError(t, err)

	got, err := store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	_, err = store.GetUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.CreateUser(ctx, models.NewUser{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestPostgresStore_ClosedPoolIsStorageError(t *testing.T) {
	store := setupPostgres(t)
	require.NoError(t, store.Close())

	_, err := store.ListContacts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
}
