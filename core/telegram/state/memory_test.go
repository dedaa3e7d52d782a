package state

import (
	"testing"
	"time"
)

func TestMemoryManagerStateTransitions(t *testing.T) {
	m := NewMemoryManager()
	const userID = int64(1)

	if m.HasState(userID) {
		t.Fatal("fresh manager should have no state")
	}
	if got := m.GetState(userID); got != StateIdle {
		t.Fatalf("GetState = %q, expected idle", got)
	}

	m.SetState(userID, State("order:awaiting_address"))
	if !m.InProgress(userID) {
		t.Fatal("expected state in progress")
	}
	if got := m.GetState(userID); got != State("order:awaiting_address") {
		t.Fatalf("GetState = %q", got)
	}

	m.ClearState(userID)
	if m.HasState(userID) {
		t.Fatal("expected idle after ClearState")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	m := NewMemoryManager()
	const userID = int64(1)

	m.SetTemp(userID, "product_id", int64(10))
	m.SetTemp(userID, "address", "Main st 1")

	if v, ok := m.GetTempInt64(userID, "product_id"); !ok || v != 10 {
		t.Fatalf("GetTempInt64 = %d, %v", v, ok)
	}
	if v, ok := m.GetTempString(userID, "address"); !ok || v != "Main st 1" {
		t.Fatalf("GetTempString = %q, %v", v, ok)
	}
	if _, ok := m.GetTempInt64(userID, "address"); ok {
		t.Fatal("expected type mismatch to report not found")
	}

	m.ClearTemp(userID, "product_id")
	if _, ok := m.GetTemp(userID, "product_id"); ok {
		t.Fatal("expected cleared key to be absent")
	}

	m.Clear(userID)
	if _, ok := m.GetTemp(userID, "address"); ok {
		t.Fatal("expected Clear to drop the session")
	}
}

func TestMemoryManagerUserIsolation(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("cart:awaiting_quantity"))
	m.SetTemp(1, "quantity", int64(3))

	if m.HasState(2) {
		t.Fatal("state leaked to another user")
	}
	if _, ok := m.GetTemp(2, "quantity"); ok {
		t.Fatal("temp data leaked to another user")
	}
}

func TestMemoryManagerTTLExpiry(t *testing.T) {
	m := NewMemoryManagerTTL(10 * time.Millisecond)
	const userID = int64(1)

	m.SetState(userID, State("order:awaiting_phone"))
	m.SetTemp(userID, "address", "Main st 1")

	if !m.InProgress(userID) {
		t.Fatal("expected state before expiry")
	}

	time.Sleep(25 * time.Millisecond)

	if m.InProgress(userID) {
		t.Fatal("expected session to expire")
	}
	if _, ok := m.GetTempString(userID, "address"); ok {
		t.Fatal("expected temp data to expire with the session")
	}
}

func TestMemoryManagerTouchExtendsTTL(t *testing.T) {
	m := NewMemoryManagerTTL(40 * time.Millisecond)
	const userID = int64(1)

	m.SetState(userID, State("faq:awaiting_answer"))
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		m.SetTemp(userID, "question", "still here")
	}

	if !m.InProgress(userID) {
		t.Fatal("activity should keep the session alive")
	}
}
