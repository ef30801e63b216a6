package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/portfolio-api/internal/models"
)

func strp(s string) *string { return &s }

func TestMemoryStore_CreateContactFillsNullSentinels(t *testing.T) {
	store := NewMemoryStore()

	c, err := store.CreateContact(context.Background(), models.NewContact{
		Name:               "A",
		Email:              "a@x.com",
		ProjectDescription: "Build a site",
		Service:            strp("website-dev"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	require.NotNil(t, c.Service)
	assert.Equal(t, "website-dev", *c.Service)
	assert.Nil(t, c.Country)
	assert.Nil(t, c.Budget)
	assert.Nil(t, c.CustomBudget)
	assert.Nil(t, c.Timeline)
}

func TestMemoryStore_UniqueIDsAndMonotonicTimes(t *testing.T) {
	// A clock that runs backwards must not produce decreasing createdAt values.
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ticks := []time.Duration{0, 2 * time.Second, time.Second, 3 * time.Second, 3 * time.Second}
	i := 0
	store := NewMemoryStore(WithClock(func() time.Time {
		d := ticks[i%len(ticks)]
		i++
		return base.Add(d)
	}))

	seen := map[string]bool{}
	var prev time.Time
	for n := 0; n < len(ticks); n++ {
		c, err := store.CreateContact(context.Background(), models.NewContact{
			Name: "n", Email: "e@x.com", ProjectDescription: "p",
		})
		require.NoError(t, err)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.False(t, c.CreatedAt.Before(prev), "createdAt went backwards")
		prev = c.CreatedAt
	}
}

func TestMemoryStore_ListContactsNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	store := NewMemoryStore(WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n/2) * time.Second) // pairs share a timestamp
	}))

	for i := 0; i < 5; i++ {
		_, err := store.CreateContact(context.Background(), models.NewContact{
			Name: fmt.Sprintf("c%d", i), Email: "e@x.com", ProjectDescription: "p",
		})
		require.NoError(t, err)
	}

	list, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt))
	}
	assert.Equal(t, "c4", list[0].Name)
	assert.Equal(t, "c0", list[4].Name)

	again, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, again, "ties must be ordered stably")
}

func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.CreateContact(context.Background(), models.NewContact{
		Name: "A", Email: "a@x.com", ProjectDescription: "p", Budget: strp("custom"),
	})
	require.NoError(t, err)

	list, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	list[0].Name = "mutated"
	*list[0].Budget = "mutated"

	fresh, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", fresh[0].Name)
	assert.Equal(t, "custom", *fresh[0].Budget)
}

func TestMemoryStore_ServiceInquiries(t *testing.T) {
	store := NewMemoryStore()

	q, err := store.CreateServiceInquiry(context.Background(), models.NewServiceInquiry{
		Name: "B", Email: "b@x.com", Service: "seo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Nil(t, q.Message)

	_, err = store.CreateServiceInquiry(context.Background(), models.NewServiceInquiry{
		Name: "C", Email: "c@x.com", Service: "branding", Message: strp("hi"),
	})
	require.NoError(t, err)

	list, err := store.ListServiceInquiries(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "B", list[1].Name)
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	store := NewMemoryStore()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateContact(context.Background(), models.NewContact{
				Name: "n", Email: "e@x.com", ProjectDescription: "p",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := store.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestMemoryStore_CanceledContextIsStorageError(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.CreateContact(ctx, models.NewContact{Name: "n", Email: "e@x.com", ProjectDescription: "p"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, context.Canceled))

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "create contact", se.Op)
}

func TestMemoryStore_Users(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	u, err := store.CreateUser(ctx, models.NewUser{Username: "admin", Password: "hash"})
	require.NoError(t, err)

	got, err := store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	got, err = store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.CreateUser(ctx, models.NewUser{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
