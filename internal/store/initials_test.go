package store

import "testing"

func TestInitials(t *testing.T) {
	s := newTestStore(t)

	initials, err := s.Initials("authors", nil)
	if err != nil {
		t.Fatalf("Failed to read initials: %v", err)
	}
	want := []struct {
		initial string
		count   int
	}{{"H", 1}, {"L", 1}, {"R", 1}}
	if len(initials) != len(want) {
		t.Fatalf("Expected %d initials, got %d", len(want), len(initials))
	}
	for i, w := range want {
		if initials[i].Initial != w.initial || initials[i].Count != w.count {
			t.Fatalf("Initial %d: expected %s=%d, got %s=%d",
				i, w.initial, w.count, initials[i].Initial, initials[i].Count)
		}
	}

	if _, err := s.Initials("identifiers", nil); err == nil {
		t.Fatal("Tables outside the whitelist must be rejected")
	}
}

func TestInitialsWithSearch(t *testing.T) {
	s := newTestStore(t)

	initials, err := s.Initials("books", &SearchOptions{Term: "das"})
	if err != nil {
		t.Fatalf("Failed to read initials: %v", err)
	}
	// "Buch der Bilder, Das" and "Stunden-Buch, Das" match on sort.
	total := 0
	for _, i := range initials {
		total += i.Count
	}
	if total != 2 {
		t.Fatalf("Expected 2 matching books, got %d (%+v)", total, initials)
	}
}

func TestTitlesYears(t *testing.T) {
	s := newTestStore(t)

	years, err := s.TitlesYears(nil)
	if err != nil {
		t.Fatalf("Failed to read years: %v", err)
	}
	if len(years) != 6 {
		t.Fatalf("Expected 6 distinct years, got %d", len(years))
	}
	// Newest first, 1923 has two books.
	if years[0].Initial != "1923" || years[0].Count != 2 {
		t.Fatalf("Unexpected first year: %+v", years[0])
	}
	if years[len(years)-1].Initial != "1751" {
		t.Fatalf("Unexpected last year: %+v", years[len(years)-1])
	}
}

// Both jump-position strategies must return the same pair for the same data.
func TestCalcInitialPosStrategiesAgree(t *testing.T) {
	s := newTestStore(t)
	if !s.supportsWindowFunctions {
		t.Fatal("Test build is expected to support window functions")
	}

	for _, initial := range []string{"A", "B", "D", "L", "N", "S", "Z"} {
		wPos, wCount, err := s.CalcInitialPos("books", initial, nil)
		if err != nil {
			t.Fatalf("Window path failed for %s: %v", initial, err)
		}
		fPos, fCount, err := s.initialPosFallback("books", "substr(upper(sort), 1, 1)", "sort", initial, nil, false)
		if err != nil {
			t.Fatalf("Fallback path failed for %s: %v", initial, err)
		}
		if wPos != fPos || wCount != fCount {
			t.Fatalf("Strategies disagree for %s: window (%d, %d), fallback (%d, %d)",
				initial, wPos, wCount, fPos, fCount)
		}
	}
}

func TestCalcInitialPos(t *testing.T) {
	s := newTestStore(t)

	// Book sorts: B, D, L, N, S, S, S.
	pos, count, err := s.CalcInitialPos("books", "S", nil)
	if err != nil {
		t.Fatalf("Failed to compute position: %v", err)
	}
	if pos != 4 || count != 3 {
		t.Fatalf("Expected (4, 3) for S, got (%d, %d)", pos, count)
	}

	// A letter not present still has a defined insertion point.
	pos, count, err = s.CalcInitialPos("books", "A", nil)
	if err != nil {
		t.Fatalf("Failed to compute position: %v", err)
	}
	if pos != 0 || count != 0 {
		t.Fatalf("Expected (0, 0) for A, got (%d, %d)", pos, count)
	}

	pos, count, err = s.CalcInitialPos("books", "Z", nil)
	if err != nil {
		t.Fatalf("Failed to compute position: %v", err)
	}
	if pos != 7 || count != 0 {
		t.Fatalf("Expected (7, 0) for Z, got (%d, %d)", pos, count)
	}

	if _, _, err := s.CalcInitialPos("identifiers", "A", nil); err == nil {
		t.Fatal("Tables outside the whitelist must be rejected")
	}
}

func TestCalcYearPos(t *testing.T) {
	s := newTestStore(t)

	// Years sort newest first: 1923, 1923, 1907, 1905, 1902, 1816, 1751.
	pos, count, err := s.CalcYearPos("1907", nil)
	if err != nil {
		t.Fatalf("Failed to compute position: %v", err)
	}
	if pos != 2 || count != 1 {
		t.Fatalf("Expected (2, 1) for 1907, got (%d, %d)", pos, count)
	}

	pos, count, err = s.CalcYearPos("1923", nil)
	if err != nil {
		t.Fatalf("Failed to compute position: %v", err)
	}
	if pos != 0 || count != 2 {
		t.Fatalf("Expected (0, 2) for 1923, got (%d, %d)", pos, count)
	}
}

func TestCalcInitialPosFallbackOnly(t *testing.T) {
	s := newTestStore(t)
	s.supportsWindowFunctions = false

	pos, count, err := s.CalcInitialPos("books", "S", nil)
	if err != nil {
		t.Fatalf("Fallback failed: %v", err)
	}
	if pos != 4 || count != 3 {
		t.Fatalf("Expected (4, 3) for S, got (%d, %d)", pos, count)
	}

	pos, count, err = s.CalcYearPos("1907", nil)
	if err != nil {
		t.Fatalf("Fallback failed: %v", err)
	}
	if pos != 2 || count != 1 {
		t.Fatalf("Expected (2, 1) for 1907, got (%d, %d)", pos, count)
	}
}
