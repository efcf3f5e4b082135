package utils

import "testing"

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"9:30", 570},
		{"09:30", 570},
		{"23:59", 1439},
		{"", -1},
		{"lunch", -1},
		{"24:00", -1},
		{"12:60", -1},
		{"9:5", -1},
	}
	for _, c := range cases {
		if got := MinuteOfDay(c.in); got != c.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("user@example.com") {
		t.Error("expected user@example.com to be valid")
	}
	if ValidEmail("not-an-email") {
		t.Error("expected not-an-email to be invalid")
	}
	if ValidEmail("") {
		t.Error("expected empty string to be invalid")
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(12)
	if len(s) != 12 {
		t.Fatalf("length: got %d, want 12", len(s))
	}
	if s == GenerateRandomString(12) {
		t.Fatal("two random strings should not collide")
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(6)
	if len(s) != 6 {
		t.Fatalf("length: got %d, want 6", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %q", r, s)
		}
	}
}
