package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/osa911/portfolio-api/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	tableContacts  = "contacts"
	tableInquiries = "service_inquiries"
	tableUsers     = "users"

	pqUniqueViolation = "23505"
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	contactColumns = []string{
		"id", "name", "email", "project_description", "service",
		"country", "budget", "custom_budget", "timeline", "created_at",
	}
	inquiryColumns = []string{"id", "name", "email", "service", "message", "created_at"}
	userColumns    = []string{"id", "username", "password"}
)

// PostgresStore persists records in PostgreSQL. Every backend failure is
// returned as a *StorageError.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, storageError("open", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageError("ping", err)
	}

	return NewPostgresStore(db), nil
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// DB exposes the underlying pool.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// Migrate applies the embedded schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db)
}

// Migrate applies the embedded goose migrations to db.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return storageError("migrate", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return storageError("migrate", err)
	}
	return nil
}

// stamp returns a microsecond-precision creation time that never goes
// backwards within this process.
func (s *PostgresStore) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}

func (s *PostgresStore) CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	contact := models.Contact{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Email:              in.Email,
		ProjectDescription: in.ProjectDescription,
		Service:            clonePtr(in.Service),
		Country:            clonePtr(in.Country),
		Budget:             clonePtr(in.Budget),
		CustomBudget:       clonePtr(in.CustomBudget),
		Timeline:           clonePtr(in.Timeline),
		CreatedAt:          s.stamp(),
	}

	query, args, err := psql.Insert(tableContacts).
		Columns(contactColumns...).
		Values(
			contact.ID, contact.Name, contact.Email, contact.ProjectDescription,
			contact.Service, contact.Country, contact.Budget, contact.CustomBudget,
			contact.Timeline, contact.CreatedAt,
		).
		ToSql()
	if err != nil {
		return models.Contact{}, storageError("create contact", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return models.Contact{}, storageError("create contact", err)
	}

	return contact, nil
}

func (s *PostgresStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	query, args, err := psql.Select(contactColumns...).
		From(tableContacts).
		OrderBy("created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, storageError("list contacts", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("list contacts", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var (
			c                                                  models.Contact
			service, country, budget, customBudget, timeline sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.ProjectDescription,
			&service, &country, &budget, &customBudget, &timeline, &c.CreatedAt,
		); err != nil {
			return nil, storageError("list contacts", err)
		}
		c.Service = nullable(service)
		c.Country = nullable(country)
		c.Budget = nullable(budget)
		c.CustomBudget = nullable(customBudget)
		c.Timeline = nullable(timeline)
		c.CreatedAt = c.CreatedAt.UTC()
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list contacts", err)
	}

	return contacts, nil
}

func (s *PostgresStore) CreateServiceInquiry(ctx context.Context, in models.NewServiceInquiry) (models.ServiceInquiry, error) {
	inquiry := models.ServiceInquiry{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Service:   in.Service,
		Message:   clonePtr(in.Message),
		CreatedAt: s.stamp(),
	}

	query, args, err := psql.Insert(tableInquiries).
		Columns(inquiryColumns...).
		Values(inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Service, inquiry.Message, inquiry.CreatedAt).
		ToSql()
	if err != nil {
		return models.ServiceInquiry{}, storageError("create service inquiry", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return models.ServiceInquiry{}, storageError("create service inquiry", err)
	}

	return inquiry, nil
}

func (s *PostgresStore) ListServiceInquiries(ctx context.Context) ([]models.ServiceInquiry, error) {
	query, args, err := psql.Select(inquiryColumns...).
		From(tableInquiries).
		OrderBy("created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, storageError("list service inquiries", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("list service inquiries", err)
	}
	defer rows.Close()

	inquiries := []models.ServiceInquiry{}
	for rows.Next() {
		var (
			q       models.ServiceInquiry
			message sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Service, &message, &q.CreatedAt); err != nil {
			return nil, storageError("list service inquiries", err)
		}
		q.Message = nullable(message)
		q.CreatedAt = q.CreatedAt.UTC()
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list service inquiries", err)
	}

	return inquiries, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUserBy(ctx, "id", id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserBy(ctx, "username", username)
}

func (s *PostgresStore) getUserBy(ctx context.Context, column, value string) (*models.User, error) {
	if column == "id" {
		if _, err := uuid.Parse(value); err != nil {
			return nil, ErrNotFound
		}
	}

	query, args, err := psql.Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, storageError("get user", err)
	}

	var u models.User
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("get user", err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	user := models.User{
		ID:       uuid.New().String(),
		Username: in.Username,
		Password: in.Password,
	}

	query, args, err := psql.Insert(tableUsers).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Password).
		ToSql()
	if err != nil {
		return nil, storageError("create user", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("user %q: %w", in.Username, ErrAlreadyExists)
		}
		return nil, storageError("create user", err)
	}

	return &user, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return storageError("ping", s.db.PingContext(ctx))
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
