package admin

import (
	"os"
	"testing"
)

func TestAdminEmailsParsing(t *testing.T) {
	os.Setenv("ADMIN_EMAILS", " Ops@Example.com, root@example.com ,,")
	defer os.Unsetenv("ADMIN_EMAILS")

	set := adminEmails()
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(set), set)
	}
	if !set["ops@example.com"] {
		t.Fatal("expected lowercased ops@example.com in allowlist")
	}
	if !set["root@example.com"] {
		t.Fatal("expected root@example.com in allowlist")
	}
}

func TestAdminEmailsEmpty(t *testing.T) {
	os.Unsetenv("ADMIN_EMAILS")
	if set := adminEmails(); len(set) != 0 {
		t.Fatalf("expected empty allowlist, got %v", set)
	}
}
