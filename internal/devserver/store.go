package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dverenev/priceadmin/internal/common"
)

// user is the server-side identity record. Identifiers are uuid strings, as
// the client expects.
type user struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// priceList is the server-side price list record.
type priceList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listFilter mirrors the query parameters of GET /price-lists.
type listFilter struct {
	page      int
	limit     int
	sortField string
	sortDir   string
	search    string
	dateFrom  time.Time
	dateTo    time.Time
}

// store holds all server state in memory.
type store struct {
	mu     sync.Mutex
	users  map[string]*user // keyed by email
	lists  map[int64]*priceList
	nextID int64
	now    func() time.Time
}

func newStore() *store {
	return &store{
		users:  make(map[string]*user),
		lists:  make(map[int64]*priceList),
		nextID: 1,
		now:    time.Now,
	}
}

// userByEmail returns the account for email, creating it on first login.
// The dev backend accepts any address.
func (s *store) userByEmail(email string) *user {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[email]; ok {
		return u
	}
	now := s.now()
	u := &user{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.SplitN(email, "@", 2)[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[email] = u
	return u
}

func (s *store) userByID(id string) *user {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *store) markVerified(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		u.IsVerified = true
		u.UpdatedAt = s.now()
	}
}

// list returns the filtered, sorted page plus the total match count.
func (s *store) list(f listFilter) ([]priceList, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]priceList, 0, len(s.lists))
	search := strings.ToLower(f.search)
	for _, p := range s.lists {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if !f.dateFrom.IsZero() && p.CreatedAt.Before(f.dateFrom) {
			continue
		}
		if !f.dateTo.IsZero() && p.CreatedAt.After(f.dateTo) {
			continue
		}
		matched = append(matched, *p)
	}

	sortLists(matched, f.sortField, f.sortDir)

	total := len(matched)

	page, limit := f.page, f.limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= total {
		return []priceList{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func sortLists(items []priceList, field, dir string) {
	desc := dir == "desc"
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch field {
		case "created_at":
			less = items[i].CreatedAt.Before(items[j].CreatedAt)
		case "updated_at":
			less = items[i].UpdatedAt.Before(items[j].UpdatedAt)
		default:
			less = strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		}
		if desc {
			return !less
		}
		return less
	})
}

func (s *store) get(id int64) (*priceList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.lists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *p
	return &out, nil
}

// nameTaken reports whether another record (excluding excludeID) already uses
// name. Comparison is case-insensitive.
func (s *store) nameTakenLocked(name string, excludeID int64) bool {
	for _, p := range s.lists {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (s *store) create(name string) (*priceList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(name, 0) {
		return nil, common.ErrNameTaken
	}

	now := s.now()
	p := &priceList{ID: s.nextID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.nextID++
	s.lists[p.ID] = p
	out := *p
	return &out, nil
}

func (s *store) update(id int64, name string) (*priceList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.lists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if s.nameTakenLocked(name, id) {
		return nil, common.ErrNameTaken
	}
	p.Name = name
	p.UpdatedAt = s.now()
	out := *p
	return &out, nil
}

func (s *store) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.lists, id)
	return nil
}

func (s *store) nameAvailable(name string, excludeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.nameTakenLocked(name, excludeID)
}
