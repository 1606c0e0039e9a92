package store

import "testing"

func TestListCustomColumns(t *testing.T) {
	s := newTestStore(t)

	columns, err := s.ListCustomColumns()
	if err != nil {
		t.Fatalf("Failed to list columns: %v", err)
	}
	// Composite and series-typed definitions never appear.
	if len(columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(columns))
	}
	if columns[0].Name != "Col1" || columns[0].Datatype != "float" {
		t.Fatalf("Unexpected first column: %+v", columns[0])
	}
	if columns[1].Name != "Col2" || !columns[1].IsMulti {
		t.Fatalf("Unexpected second column: %+v", columns[1])
	}
}

func TestCustomColumnsFolding(t *testing.T) {
	s := newTestStore(t)

	values, err := s.CustomColumns(1)
	if err != nil {
		t.Fatalf("Failed to read column values: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Expected 2 value entries, got %d: %+v", len(values), values)
	}
	if values[0].Name != "Col1" || values[0].Value != "4.5" {
		t.Fatalf("Unexpected float value: %+v", values[0])
	}
	// Multiple values of one column fold into one entry.
	if values[1].Name != "Col2" || values[1].Value != "col2a, col2b" {
		t.Fatalf("Unexpected folded value: %+v", values[1])
	}
}

func TestCustomColumnsBookWithoutValues(t *testing.T) {
	s := newTestStore(t)

	values, err := s.CustomColumns(6)
	if err != nil {
		t.Fatalf("Failed to read column values: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("Expected no entries for a book without values, got %+v", values)
	}
}

func TestFormatColumnValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("raw"), "raw"},
		{int64(3), "3"},
		{float64(4.5), "4.5"},
		{float64(4), "4"},
		{true, "yes"},
		{false, "no"},
	}
	for _, c := range cases {
		if got := formatColumnValue(c.in); got != c.want {
			t.Fatalf("formatColumnValue(%v): expected %q, got %q", c.in, c.want, got)
		}
	}
}
