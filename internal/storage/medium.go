package storage

// Medium is the durable key-value substrate the chat persists into. All
// operations are synchronous and local to the process.
type Medium interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Keys() ([]string, error)
	RemoveAll() error
}
