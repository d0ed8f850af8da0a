package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/repositories"
	"github.com/yigit/edutech/internal/domain/ledger"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/cache"
	"github.com/yigit/edutech/internal/pkg/helpers"
	"github.com/yigit/edutech/internal/pkg/websocket"
)

// memDB backs the in-memory repositories used by the service tests
type memDB struct {
	mu       sync.Mutex
	courses  []models.Course
	users    map[int64]models.User
	ledgers  map[int64]ledger.Ledger
	nextUser int64
	lists    int
}

func newMemDB() *memDB {
	return &memDB{users: map[int64]models.User{}, ledgers: map[int64]ledger.Ledger{}}
}

type memCourseRepo struct{ db *memDB }

func (r memCourseRepo) List(context.Context) ([]models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.lists++
	out := make([]models.Course, len(r.db.courses))
	copy(out, r.db.courses)
	return out, nil
}

func (r memCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.courses {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r memCourseRepo) Create(_ context.Context, course *models.Course) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.courses {
		if c.Title == course.Title {
			return 0, apperrors.ErrCourseAlreadyExists
		}
	}
	c := *course
	c.ID = int64(len(r.db.courses) + 1)
	r.db.courses = append(r.db.courses, c)
	return c.ID, nil
}

func (r memCourseRepo) Upsert(ctx context.Context, course *models.Course) (int64, error) {
	r.db.mu.Lock()
	for i, c := range r.db.courses {
		if c.Title == course.Title {
			updated := *course
			updated.ID = c.ID
			r.db.courses[i] = updated
			r.db.mu.Unlock()
			return c.ID, nil
		}
	}
	r.db.mu.Unlock()
	return r.Create(ctx, course)
}

type memUserRepo struct{ db *memDB }

func (r memUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	r.db.nextUser++
	u := user.Clone()
	u.ID = r.db.nextUser
	u.CreatedAt = time.Now()
	r.db.users[u.ID] = u
	return u.ID, nil
}

func (r memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u = u.Clone()
	return &u, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			u = u.Clone()
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r memUserRepo) UpdateProfile(_ context.Context, id int64, profile models.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Profile = profile
	r.db.users[id] = u
	return nil
}

type memWalletRepo struct{ db *memDB }

func (r memWalletRepo) Mutate(_ context.Context, userID int64, fn repositories.WalletMutation) (*models.User, *models.Transaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.users[userID]
	if !ok {
		return nil, nil, apperrors.ErrUserNotFound
	}

	next, tx, err := fn(current.Clone())
	if err != nil {
		return nil, nil, err
	}

	r.db.users[userID] = next.Clone()
	if tx != nil {
		r.db.ledgers[userID] = r.db.ledgers[userID].Prepend(*tx)
	}
	return &next, tx, nil
}

func (r memWalletRepo) ListTransactions(_ context.Context, userID int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	matching := r.db.ledgers[userID].Filter(txType)
	items, info := helpers.Paginate([]models.Transaction(matching), page, size)
	return items, info.TotalItems, nil
}

func (r memWalletRepo) Ledger(_ context.Context, userID int64) (ledger.Ledger, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return slices.Clone(r.db.ledgers[userID]), nil
}

// recordingPublisher keeps published wallet events
type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(e websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// mapCache is an in-memory cache.Cache storing raw values
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]models.Course
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]models.Course{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return cache.ErrNotFound
	}
	*(dest.(*[]models.Course)) = v
	return nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value.([]models.Course)
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

var (
	_ repositories.ICourseRepository = memCourseRepo{}
	_ repositories.IUserRepository   = memUserRepo{}
	_ repositories.IWalletRepository = memWalletRepo{}
	_ cache.Cache                    = (*mapCache)(nil)
	_ EventPublisher                 = (*recordingPublisher)(nil)
)
