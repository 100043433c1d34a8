package inventory

import "testing"

func TestAwardAndRemove(t *testing.T) {
	m := NewMemory()
	m.Award("stone", 3)
	m.Award("stone", 2)
	if m.Count("stone") != 5 {
		t.Fatalf("count = %d, want 5", m.Count("stone"))
	}

	m.Remove("stone", 4)
	if m.Count("stone") != 1 {
		t.Fatalf("count = %d, want 1", m.Count("stone"))
	}

	// Removal floors at zero.
	m.Remove("stone", 10)
	if m.Count("stone") != 0 {
		t.Fatalf("count = %d, want 0", m.Count("stone"))
	}
	if len(m.Counts()) != 0 {
		t.Fatalf("zeroed type still tracked: %v", m.Counts())
	}
}

func TestAirAndNonPositiveIgnored(t *testing.T) {
	m := NewMemory()
	m.Award("air", 5)
	m.Award("stone", 0)
	m.Award("stone", -2)
	if len(m.Counts()) != 0 {
		t.Fatalf("counts = %v, want empty", m.Counts())
	}
	m.Award("stone", 1)
	m.Remove("stone", -1)
	if m.Count("stone") != 1 {
		t.Fatalf("negative remove mutated count")
	}
}

func TestDebitAllOrNothing(t *testing.T) {
	m := NewMemory()
	m.Award("stone", 3)
	m.Award("plank", 1)

	// Short on plank: nothing changes.
	if m.Debit(map[string]int{"stone": 2, "plank": 2}) {
		t.Fatalf("short debit succeeded")
	}
	if m.Count("stone") != 3 || m.Count("plank") != 1 {
		t.Fatalf("failed debit mutated counts: %v", m.Counts())
	}

	if !m.Debit(map[string]int{"stone": 3, "plank": 1}) {
		t.Fatalf("exact debit failed")
	}
	if len(m.Counts()) != 0 {
		t.Fatalf("counts after exact debit: %v", m.Counts())
	}

	// Empty cost is a trivial success.
	if !m.Debit(nil) {
		t.Fatalf("empty debit failed")
	}
}

func TestOnChangeFires(t *testing.T) {
	m := NewMemory()
	var fired int
	m.SetOnChange(func() { fired++ })

	m.Award("stone", 1)
	m.Remove("stone", 1)
	m.Award("stone", 2)
	m.Debit(map[string]int{"stone": 2})
	if fired != 4 {
		t.Fatalf("onChange fired %d times, want 4", fired)
	}

	// No-op mutations stay silent.
	m.Award("air", 1)
	m.Award("stone", 0)
	if fired != 4 {
		t.Fatalf("onChange fired on no-op")
	}
}
