package credentials

// Repo is a durable key-value store for credential strings.
// Get returns errors.ErrNotFound when the key is absent.
type Repo interface {
	Upsert(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}
