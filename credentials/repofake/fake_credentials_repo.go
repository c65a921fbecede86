package repofake

import (
	"sync"

	"github.com/jrsteele09/boutik-admin/credentials"
	"github.com/jrsteele09/boutik-admin/internal/errors"
)

var _ credentials.Repo = (*FakeCredentialsRepo)(nil)

type FakeCredentialsRepo struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewFakeCredentialsRepo() *FakeCredentialsRepo {
	return &FakeCredentialsRepo{
		values: make(map[string]string),
	}
}

func (r *FakeCredentialsRepo) Upsert(key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.values[key] = value
	return nil
}

func (r *FakeCredentialsRepo) Get(key string) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", errors.ErrNotFound
	}
	return v, nil
}

func (r *FakeCredentialsRepo) Delete(key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.values[key]; !ok {
		return errors.ErrNotFound
	}
	delete(r.values, key)
	return nil
}
