package storage_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/internal/testutil"
	"github.com/wagerchain/wagerchain/storage"
)

func TestOverlayRoundTrip(t *testing.T) {
	base := testutil.NewMemDB()
	base.Seed(map[string][]byte{"old": []byte("base-value")})
	ov := storage.NewOverlay(base)

	ov.Insert("k", []byte("v"))
	got, err := ov.Get("k")
	if err != nil {
		t.Fatalf("Get after Insert: %v", err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = %q, want %q", got, "v")
	}

	// Reads fall through to the base for unstaged keys.
	got, err = ov.Get("old")
	if err != nil {
		t.Fatalf("read-through: %v", err)
	}
	if !bytes.Equal(got, []byte("base-value")) {
		t.Fatalf("read-through = %q", got)
	}

	// A staged delete hides the base value without touching it.
	ov.Delete("old")
	if _, err := ov.Get("old"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get after Delete: %v, want ErrNotFound", err)
	}
	if v, _ := base.Get([]byte("old")); !bytes.Equal(v, []byte("base-value")) {
		t.Fatal("base store was touched before commit")
	}
}

func TestOverlayCommitOrder(t *testing.T) {
	ov := storage.NewOverlay(testutil.NewMemDB())
	ov.Insert("b", []byte("1"))
	ov.Insert("a", []byte("2"))
	ov.Delete("c")
	ov.Insert("b", []byte("3")) // rewrite keeps first-write position

	diff := ov.Commit()
	want := []storage.Write{
		{Key: "b", Value: []byte("3")},
		{Key: "a", Value: []byte("2")},
		{Key: "c", Delete: true},
	}
	if !reflect.DeepEqual(diff, want) {
		t.Fatalf("diff = %+v, want %+v", diff, want)
	}

	// Consumed: a second commit is empty.
	if diff := ov.Commit(); len(diff) != 0 {
		t.Fatalf("second commit returned %d writes", len(diff))
	}
}

func TestOverlayUntouchedKeysAbsent(t *testing.T) {
	base := testutil.NewMemDB()
	base.Seed(map[string][]byte{"untouched": []byte("x")})
	ov := storage.NewOverlay(base)

	if _, err := ov.Get("untouched"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := ov.Commit(); len(diff) != 0 {
		t.Fatalf("reads leaked into the diff: %+v", diff)
	}
}

func TestOverlaySnapshotRevert(t *testing.T) {
	ov := storage.NewOverlay(testutil.NewMemDB())
	ov.Insert("keep", []byte("1"))

	snap := ov.Snapshot()
	ov.Insert("drop", []byte("2"))
	ov.Delete("keep")
	if err := ov.Revert(snap); err != nil {
		t.Fatalf("Revert: %v", err)
	}

	if _, err := ov.Get("drop"); !errors.Is(err, core.ErrNotFound) {
		t.Fatal("reverted insert still visible")
	}
	got, err := ov.Get("keep")
	if err != nil || !bytes.Equal(got, []byte("1")) {
		t.Fatalf("pre-snapshot write lost: %q, %v", got, err)
	}

	diff := ov.Commit()
	if len(diff) != 1 || diff[0].Key != "keep" {
		t.Fatalf("diff after revert = %+v", diff)
	}
}

func TestOverlayStateError(t *testing.T) {
	failing := &testutil.FailingDB{Err: errors.New("disk gone")}
	ov := storage.NewOverlay(failing)

	_, err := ov.Get("anything")
	var serr *core.StateError
	if !errors.As(err, &serr) {
		t.Fatalf("Get error = %v, want *core.StateError", err)
	}
}

func TestFlushDiff(t *testing.T) {
	db := testutil.NewMemDB()
	db.Seed(map[string][]byte{"gone": []byte("x")})

	ov := storage.NewOverlay(db)
	ov.Insert("a", []byte("1"))
	ov.Delete("gone")
	if err := storage.FlushDiff(db, ov.Commit()); err != nil {
		t.Fatalf("FlushDiff: %v", err)
	}

	if v, err := db.Get([]byte("a")); err != nil || !bytes.Equal(v, []byte("1")) {
		t.Fatalf("flushed value: %q, %v", v, err)
	}
	if _, err := db.Get([]byte("gone")); !errors.Is(err, core.ErrNotFound) {
		t.Fatal("deleted key survived the flush")
	}
}
