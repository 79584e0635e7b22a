package validator

import "testing"

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice_01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "ab", "has space", "way-too-long-username-over-thirty-chars"} {
		if err := ValidateUsername(bad); err != ErrInvalidUsername {
			t.Fatalf("expected ErrInvalidUsername for %q, got %v", bad, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("alice@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "no-at", "a@b", "a b@c.com"} {
		if err := ValidateEmail(bad); err != ErrInvalidEmail {
			t.Fatalf("expected ErrInvalidEmail for %q, got %v", bad, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePassword("short"); err != ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2025-01-31"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "31/01/2025", "2025-13-01", "yesterday"} {
		if err := ValidateDate(bad); err != ErrInvalidDate {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}
