package repository

import (
	"context"
	"sync"

	"journal-backend/internal/domain"
)

// InMemoryUserRepository stores users in memory
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

// GetUser returns the user with the given id, or nil.
func (r *InMemoryUserRepository) GetUser(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := u.Clone()
	return &out, nil
}

func (r *InMemoryUserRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username }), nil
}

func (r *InMemoryUserRepository) GetUserByFirebaseID(_ context.Context, firebaseID string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return eqPtr(u.FirebaseID, firebaseID) }), nil
}

func (r *InMemoryUserRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return eqPtr(u.Email, email) }), nil
}

// find returns a copy of the lowest-id user matching fn.
func (r *InMemoryUserRepository) find(fn func(*domain.User) bool) *domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var hit *domain.User
	for _, u := range r.users {
		if fn(u) && (hit == nil || u.ID < hit.ID) {
			hit = u
		}
	}
	if hit == nil {
		return nil
	}
	out := hit.Clone()
	return &out
}

// CreateUser stores a new user. Usernames and non-null firebase ids are unique.
func (r *InMemoryUserRepository) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := domain.User{
		ID:             r.nextID,
		Username:       in.Username,
		Password:       in.Password,
		Email:          in.Email,
		FirebaseID:     in.FirebaseID,
		DisplayName:    in.DisplayName,
		PhotoURL:       in.PhotoURL,
		IsFirebaseUser: in.IsFirebaseUser,
	}
	if u.Password == "" {
		u.Password = domain.PasswordExternalAuth
	}
	u = u.Clone()

	if err := r.checkUniqueLocked(&u); err != nil {
		return nil, err
	}

	r.nextID++
	r.users[u.ID] = &u

	out := u.Clone()
	return &out, nil
}

// UpdateUser merges patch over the stored user. A missing id yields nil.
func (r *InMemoryUserRepository) UpdateUser(_ context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	u := existing.Clone()
	patch.Apply(&u)
	if err := r.checkUniqueLocked(&u); err != nil {
		return nil, err
	}
	r.users[id] = &u

	out := u.Clone()
	return &out, nil
}

// UserCount returns the number of stored users.
func (r *InMemoryUserRepository) UserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *InMemoryUserRepository) checkUniqueLocked(candidate *domain.User) error {
	for id, u := range r.users {
		if id == candidate.ID {
			continue
		}
		if u.Username == candidate.Username {
			return domain.ErrDuplicateUsername
		}
		if candidate.FirebaseID != nil && eqPtr(u.FirebaseID, *candidate.FirebaseID) {
			return domain.ErrDuplicateFirebaseID
		}
	}
	return nil
}

func eqPtr(p *string, v string) bool {
	return p != nil && *p == v
}
