package engine

import "testing"

func TestCommandQueue_FIFO(t *testing.T) {
	var q commandQueue
	q.enqueue("a")
	q.enqueue("b")
	q.enqueue("a") // duplicates are preserved
	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	got := q.drain()
	want := []string{"a", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("drain = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drain[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if q.len() != 0 {
		t.Fatalf("queue not empty after drain: %d", q.len())
	}
	if again := q.drain(); len(again) != 0 {
		t.Fatalf("second drain must be empty, got %v", again)
	}
}
