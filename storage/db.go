// Package storage provides the durable key-value store interfaces, the
// LevelDB implementation, and the staged overlay the execution engine runs
// against.
package storage

// Reader is the read capability the overlay consumes. The base store is
// never written from inside the execution core; the committed diff goes
// back to it through FlushDiff after the batch is accepted.
type Reader interface {
	// Get returns core.ErrNotFound for an absent key and a real error only
	// for a store failure.
	Get(key []byte) ([]byte, error)
}

// DB is the generic key-value store interface.
type DB interface {
	Reader
	Set(key, value []byte) error
	Delete(key []byte) error
	NewIterator(prefix []byte) Iterator
	NewBatch() Batch
	Close() error
}

// Iterator walks key-value pairs matching a prefix.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Batch is an atomic write buffer.
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Reset()
	Write() error
}
