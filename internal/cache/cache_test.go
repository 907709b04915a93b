package cache

import (
	"testing"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

func view(name string) models.DashboardView {
	return models.DashboardView{Location: models.Location{Name: name}}
}

func TestCommitAndGet(t *testing.T) {
	c := New(time.Minute)

	gen := c.Begin("48.85,2.35")
	if !c.Commit("48.85,2.35", gen, view("Paris")) {
		t.Fatal("commit with current generation should land")
	}

	got, ok := c.Get("48.85,2.35")
	if !ok || got.Location.Name != "Paris" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}

	if _, ok := c.Get("0.00,0.00"); ok {
		t.Error("unknown key should miss")
	}
}

func TestStaleCommitDiscarded(t *testing.T) {
	c := New(time.Minute)

	stale := c.Begin("key")
	fresh := c.Begin("key")

	if !c.Commit("key", fresh, view("fresh")) {
		t.Fatal("latest claim should commit")
	}
	if c.Commit("key", stale, view("stale")) {
		t.Fatal("superseded claim must be discarded")
	}

	got, ok := c.Get("key")
	if !ok || got.Location.Name != "fresh" {
		t.Fatalf("stale write overwrote fresh data: %+v", got)
	}
}

func TestStaleCommitDiscardedEvenIfFirstToArrive(t *testing.T) {
	c := New(time.Minute)

	stale := c.Begin("key")
	fresh := c.Begin("key")

	// The older request's response arrives first; it must still lose.
	if c.Commit("key", stale, view("stale")) {
		t.Fatal("superseded claim must be discarded regardless of arrival order")
	}
	if !c.Commit("key", fresh, view("fresh")) {
		t.Fatal("latest claim should commit")
	}
	got, _ := c.Get("key")
	if got.Location.Name != "fresh" {
		t.Fatalf("got %+v", got)
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	gen := c.Begin("key")
	c.Commit("key", gen, view("city"))

	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry should be fresh")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := c.Get("key"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestGenerationsAreIndependentPerKey(t *testing.T) {
	c := New(time.Minute)

	a := c.Begin("a")
	_ = c.Begin("b")

	if !c.Commit("a", a, view("a")) {
		t.Fatal("claims on other keys must not invalidate this one")
	}
}
