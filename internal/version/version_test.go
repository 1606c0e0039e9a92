package version

import "testing"

func TestGetMinorVersion(t *testing.T) {
	if got := GetMinorVersion("0.2.1"); got != "0.2" {
		t.Fatalf("Expected 0.2, got %s", got)
	}
	if got := GetMinorVersion("1"); got != "1" {
		t.Fatalf("Expected 1, got %s", got)
	}
}

func TestVersionComparison(t *testing.T) {
	if !IsVersionGreaterThan("0.3.0", "0.2.9") {
		t.Fatal("0.3.0 must be greater than 0.2.9")
	}
	if IsVersionGreaterThan("0.2.0", "0.2.0") {
		t.Fatal("Equal versions must not compare greater")
	}
	if !IsVersionGreaterOrEqualThan("0.2.0", "0.2.0") {
		t.Fatal("Equal versions must compare greater-or-equal")
	}
	// Prefixed and bare forms compare alike.
	if !IsVersionGreaterOrEqualThan("v1.0.0", "0.9.0") {
		t.Fatal("v1.0.0 must be greater than 0.9.0")
	}
}
