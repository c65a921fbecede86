package repofake

import (
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/units"
)

var _ units.Repo = (*FakeUnitsRepo)(nil)

type FakeUnitsRepo struct {
	units  map[int]*units.PointOfSale
	nextID int
	lock   sync.RWMutex
}

func NewFakeUnitsRepo() *FakeUnitsRepo {
	return &FakeUnitsRepo{
		units:  make(map[int]*units.PointOfSale),
		nextID: 1,
	}
}

func (r *FakeUnitsRepo) Create(pos *units.PointOfSale) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	pos.ID = r.nextID
	r.nextID++
	if pos.CreatedAt == nil {
		now := time.Now().UTC()
		pos.CreatedAt = &now
	}
	r.units[pos.ID] = copyPOS(pos)
	return nil
}

func (r *FakeUnitsRepo) Update(pos *units.PointOfSale) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.units[pos.ID]; !ok {
		return errors.ErrNotFound
	}
	r.units[pos.ID] = copyPOS(pos)
	return nil
}

func (r *FakeUnitsRepo) Delete(id int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.units[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.units, id)
	return nil
}

func (r *FakeUnitsRepo) Get(id int) (*units.PointOfSale, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pos, ok := r.units[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return copyPOS(pos), nil
}

func (r *FakeUnitsRepo) ListByOwner(ownerID int) ([]*units.PointOfSale, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*units.PointOfSale, 0)
	for _, pos := range r.units {
		if pos.OwnerID != nil && *pos.OwnerID == ownerID {
			list = append(list, copyPOS(pos))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *FakeUnitsRepo) CountByOwner(ownerID int) (int, error) {
	list, err := r.ListByOwner(ownerID)
	return len(list), err
}

func copyPOS(pos *units.PointOfSale) *units.PointOfSale {
	c := *pos
	return &c
}
