package fakeuserrepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[int]*users.User
	emailIds map[string]int // email to user id
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[int]*users.User),
		emailIds: make(map[string]int),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	email := strings.ToLower(user.Email)
	if id, ok := ur.emailIds[email]; ok && id != user.ID {
		if user.ID != 0 {
			return errors.Wrapf(errors.ErrInvalidInput, "email %s already registered", user.Email)
		}
		user.ID = id
	}
	if user.ID == 0 {
		user.ID = ur.nextID
		ur.nextID++
	} else if user.ID >= ur.nextID {
		ur.nextID = user.ID + 1
	}
	if user.CreatedAt == nil {
		now := time.Now().UTC()
		user.CreatedAt = &now
	}
	if old, ok := ur.users[user.ID]; ok && strings.ToLower(old.Email) != email {
		delete(ur.emailIds, strings.ToLower(old.Email))
	}
	ur.users[user.ID] = user
	ur.emailIds[email] = user.ID
	return nil
}

func (ur *FakeUserRepo) Delete(id int) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return errors.ErrNotFound
	}
	delete(ur.emailIds, strings.ToLower(user.Email))
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(id int) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) ListOwners(q users.OwnerQuery) (users.OwnerList, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	owners := make([]*users.User, 0)
	for _, u := range ur.users {
		if !u.IsOwner {
			continue
		}
		if q.Active != nil && u.IsActive != *q.Active {
			continue
		}
		if !matchesSearch(u, q.Search) {
			continue
		}
		owners = append(owners, u)
	}

	sort.SliceStable(owners, func(i, j int) bool {
		less := lessBy(q.SortBy, owners[i], owners[j])
		if q.Descending {
			return lessBy(q.SortBy, owners[j], owners[i])
		}
		return less
	})

	list := users.OwnerList{Total: len(owners)}
	for _, u := range owners {
		if u.IsActive {
			list.TotalActive++
		}
	}

	if q.Skip >= len(owners) {
		list.Owners = []*users.User{}
		return list, nil
	}
	end := len(owners)
	if q.Limit > 0 && q.Skip+q.Limit < end {
		end = q.Skip + q.Limit
	}
	list.Owners = owners[q.Skip:end]
	return list, nil
}

func lessBy(field users.SortField, a, b *users.User) bool {
	switch field {
	case users.SortByLastName:
		if a.LastName != b.LastName {
			return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
		}
	case users.SortByCreatedAt:
		at, bt := createdAt(a), createdAt(b)
		if !at.Equal(bt) {
			return at.Before(bt)
		}
	}
	return a.ID < b.ID
}

func createdAt(u *users.User) time.Time {
	if u.CreatedAt == nil {
		return time.Time{}
	}
	return *u.CreatedAt
}

func matchesSearch(u *users.User, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Email), search) ||
		strings.Contains(strings.ToLower(u.FullName()), search)
}
