package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Clear()
}

// memUserRepository keeps users for the lifetime of the process. Lookups are
// linear scans over the slice.
type memUserRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewMemUserRepository() UserRepository {
	return &memUserRepository{}
}

func (r *memUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Email is the uniqueness key; exact, case-sensitive match.
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return nil, fmt.Errorf("memUserRepository.Create: %w", common.ErrDuplicateEmail)
		}
	}
	r.users = append(r.users, *user)
	created := *user
	return &created, nil
}

func (r *memUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

func (r *memUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = nil
}
