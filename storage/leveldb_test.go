package storage_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/storage"
)

func TestLevelDBFlushRoundTrip(t *testing.T) {
	db, err := storage.NewLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ov := storage.NewOverlay(db)
	ov.Insert("acct:aa", []byte(`{"chips":5}`))
	ov.Insert("sess:1", []byte(`{"id":1}`))
	if err := storage.FlushDiff(db, ov.Commit()); err != nil {
		t.Fatalf("FlushDiff: %v", err)
	}

	v, err := db.Get([]byte("acct:aa"))
	if err != nil || !bytes.Equal(v, []byte(`{"chips":5}`)) {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if _, err := db.Get([]byte("missing")); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing key error = %v, want ErrNotFound", err)
	}

	it := db.NewIterator([]byte("sess:"))
	defer it.Release()
	n := 0
	for it.Next() {
		n++
	}
	if n != 1 {
		t.Fatalf("prefix scan found %d keys, want 1", n)
	}
}
