package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osa911/portfolio-api/internal/models"
)

// MemoryStore keeps records in process memory. Records are kept in insertion
// order and creation times never decrease, so reverse insertion order is
// newest-first with stable ties.
type MemoryStore struct {
	mu        sync.RWMutex
	now       func() time.Time
	newID     func() string
	last      time.Time
	contacts  []models.Contact
	inquiries []models.ServiceInquiry
	users     map[string]models.User
}

// MemoryOption customises a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDGenerator overrides the record id source.
func WithIDGenerator(newID func() string) MemoryOption {
	return func(s *MemoryStore) { s.newID = newID }
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		users: make(map[string]models.User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*MemoryStore)(nil)

// stamp returns a creation time no earlier than any previous one.
// Callers must hold s.mu.
func (s *MemoryStore) stamp() time.Time {
	t := s.now().UTC()
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}

func (s *MemoryStore) CreateContact(ctx context.Context, in models.NewContact) (models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return models.Contact{}, storageError("create contact", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contact := models.Contact{
		ID:                 s.newID(),
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
	s.contacts = append(s.contacts, contact)

	return copyContact(contact), nil
}

func (s *MemoryStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("list contacts", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contact, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		out = append(out, copyContact(s.contacts[i]))
	}
	return out, nil
}

func (s *MemoryStore) CreateServiceInquiry(ctx context.Context, in models.NewServiceInquiry) (models.ServiceInquiry, error) {
	if err := ctx.Err(); err != nil {
		return models.ServiceInquiry{}, storageError("create service inquiry", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry := models.ServiceInquiry{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Service:   in.Service,
		Message:   clonePtr(in.Message),
		CreatedAt: s.stamp(),
	}
	s.inquiries = append(s.inquiries, inquiry)

	return copyInquiry(inquiry), nil
}

func (s *MemoryStore) ListServiceInquiries(ctx context.Context) ([]models.ServiceInquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("list service inquiries", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ServiceInquiry, 0, len(s.inquiries))
	for i := len(s.inquiries) - 1; i >= 0; i-- {
		out = append(out, copyInquiry(s.inquiries[i]))
	}
	return out, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == in.Username {
			return nil, ErrAlreadyExists
		}
	}

	user := models.User{
		ID:       s.newID(),
		Username: in.Username,
		Password: in.Password,
	}
	s.users[user.ID] = user
	return &user, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyContact(c models.Contact) models.Contact {
	c.Service = clonePtr(c.Service)
	c.Country = clonePtr(c.Country)
	c.Budget = clonePtr(c.Budget)
	c.CustomBudget = clonePtr(c.CustomBudget)
	c.Timeline = clonePtr(c.Timeline)
	return c
}

func copyInquiry(q models.ServiceInquiry) models.ServiceInquiry {
	q.Message = clonePtr(q.Message)
	return q
}
