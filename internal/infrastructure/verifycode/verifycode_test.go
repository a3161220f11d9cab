package verifycode

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	f := NewFixed("123456")
	code, err := f.Issue("info@example.com")
	if err != nil || code != "123456" {
		t.Fatalf("issue = %q, %v", code, err)
	}
	if !f.Match("anyone@example.com", "123456") || f.Match("info@example.com", "000000") {
		t.Fatal("fixed code matching is wrong")
	}
}

func TestSigner(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	s := NewSigner("secret", 15*time.Minute)
	s.Now = func() time.Time { return now }

	code, err := s.Issue("info@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !s.Match("info@example.com", code) {
		t.Fatal("fresh code rejected")
	}
	if s.Match("other@example.com", code) {
		t.Fatal("code accepted for another subject")
	}
	if s.Match("info@example.com", "123456") {
		t.Fatal("garbage accepted")
	}

	other := NewSigner("different", 15*time.Minute)
	other.Now = s.Now
	if other.Match("info@example.com", code) {
		t.Fatal("code accepted under another secret")
	}

	now = now.Add(16 * time.Minute)
	if s.Match("info@example.com", code) {
		t.Fatal("expired code accepted")
	}
}
