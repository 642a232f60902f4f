package security

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Fatal("expected correct password to verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	if CheckPassword("anything", "") {
		t.Fatal("expected empty hash to never verify")
	}
	if CheckPassword("", "") {
		t.Fatal("expected empty password against empty hash to never verify")
	}
}
