package publicid

import "testing"

func TestNewShape(t *testing.T) {
	token, err := New()
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("expected 32 hex characters, got %d (%q)", len(token), token)
	}
	for _, c := range token {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("unexpected character %q in token %q", c, token)
		}
	}
}

func TestNewDoesNotRepeat(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := New()
		if err != nil {
			t.Fatalf("new token: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("token %q repeated", token)
		}
		seen[token] = struct{}{}
	}
}
