package pipeline

import (
	"sort"
	"strings"
	"testing"
	"time"
)

func TestNewJobID_Format(t *testing.T) {
	id := NewJobID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, c := range id {
		if !strings.ContainsRune(crockford, c) {
			t.Fatalf("unexpected character %q in %q", c, id)
		}
	}
	if !strings.ContainsRune("01234567", rune(id[0])) {
		t.Errorf("expected first character to carry three bits, got %q", id[0])
	}
}

func TestNewJobID_UniqueAndOrdered(t *testing.T) {
	now := time.Now()
	ids := make([]string, 0, 1000)
	seen := make(map[string]bool)
	for range 1000 {
		id := newULID(now)
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("expected ids from one millisecond to sort in creation order")
	}
}

func TestEncodeULID(t *testing.T) {
	var zero [16]byte
	if got := encodeULID(zero); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %q", got)
	}

	var ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	if got := encodeULID(ones); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected max ULID, got %q", got)
	}

	var low [16]byte
	low[15] = 33
	if got := encodeULID(low); got != strings.Repeat("0", 24)+"11" {
		t.Errorf("expected low bits in last digits, got %q", got)
	}
}
