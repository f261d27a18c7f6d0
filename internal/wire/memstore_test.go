package wire

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
)

// memStore backs the three repositories with maps so the router can be
// exercised end to end without a database.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	packages map[uuid.UUID]entity.TravelPackage
	bookings map[uuid.UUID]entity.Booking
}

func newMemRepository() (*repository.Repository, *memStore) {
	s := &memStore{
		users:    map[uuid.UUID]entity.User{},
		packages: map[uuid.UUID]entity.TravelPackage{},
		bookings: map[uuid.UUID]entity.Booking{},
	}
	return &repository.Repository{
		User:    memUsers{s},
		Package: memPackages{s},
		Booking: memBookings{s},
	}, s
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(_ context.Context, user *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.s.users[user.ID] = *user
	return nil
}

func (m memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m memUsers) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	all := make([]*entity.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return window(all, limit, offset), nil
}

func (m memUsers) CountAll(context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.users)), nil
}

func (m memUsers) Update(_ context.Context, user *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.s.users[user.ID] = *user
	return nil
}

type memPackages struct{ s *memStore }

func (m memPackages) Create(_ context.Context, pkg *entity.TravelPackage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.packages[pkg.ID] = *pkg
	return nil
}

func (m memPackages) FindByID(_ context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.live(id), nil
}

func (m memPackages) FindAll(_ context.Context, _ entity.PackageFilter, limit, offset int) ([]*entity.TravelPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return window(m.s.livePackages(), limit, offset), nil
}

func (m memPackages) Count(context.Context, entity.PackageFilter) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.livePackages())), nil
}

func (m memPackages) ListAll(context.Context) ([]*entity.TravelPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.livePackages(), nil
}

func (m memPackages) Update(_ context.Context, pkg *entity.TravelPackage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.live(pkg.ID) == nil {
		return repository.ErrNotFound
	}
	m.s.packages[pkg.ID] = *pkg
	return nil
}

func (m memPackages) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	pkg := m.s.live(id)
	if pkg == nil {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	pkg.DeletedAt = &now
	m.s.packages[id] = *pkg
	return nil
}

type memBookings struct{ s *memStore }

func (m memBookings) CreateWithPackage(_ context.Context, booking *entity.Booking, price repository.PriceFunc) (*entity.TravelPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	pkg := m.s.live(booking.PackageID)
	if pkg == nil {
		return nil, nil
	}
	booking.TotalPrice = price(pkg)
	m.s.bookings[booking.ID] = *booking
	return pkg, nil
}

func (m memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	b, ok := m.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m memBookings) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return window(m.s.bookingsOf(map[uuid.UUID]bool{userID: true}), limit, offset), nil
}

func (m memBookings) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.bookingsOf(map[uuid.UUID]bool{userID: true}))), nil
}

func (m memBookings) FindByUserIDs(_ context.Context, userIDs []uuid.UUID) ([]*entity.BookingWithPackage, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	set := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		set[id] = true
	}
	return m.s.bookingsOf(set), nil
}

func (m memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	b, ok := m.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	m.s.bookings[id] = b
	return nil
}

func (m memBookings) CountPerPackage(context.Context) ([]*entity.PackageBookingCount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := map[uuid.UUID]*entity.PackageBookingCount{}
	for _, b := range m.s.bookings {
		pkg := m.s.live(b.PackageID)
		if pkg == nil {
			continue
		}
		c, ok := counts[pkg.ID]
		if !ok {
			c = &entity.PackageBookingCount{PackageID: pkg.ID, PackageName: pkg.DisplayName()}
			counts[pkg.ID] = c
		}
		c.Count++
	}
	out := make([]*entity.PackageBookingCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, c)
	}
	return out, nil
}

// ==================== HELPER METHODS ====================

func (s *memStore) live(id uuid.UUID) *entity.TravelPackage {
	pkg, ok := s.packages[id]
	if !ok || pkg.DeletedAt != nil {
		return nil
	}
	return &pkg
}

func (s *memStore) livePackages() []*entity.TravelPackage {
	out := make([]*entity.TravelPackage, 0, len(s.packages))
	for id := range s.packages {
		if pkg := s.live(id); pkg != nil {
			out = append(out, pkg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) bookingsOf(users map[uuid.UUID]bool) []*entity.BookingWithPackage {
	out := []*entity.BookingWithPackage{}
	for _, b := range s.bookings {
		if !users[b.UserID] {
			continue
		}
		out = append(out, &entity.BookingWithPackage{Booking: b, Package: s.live(b.PackageID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
