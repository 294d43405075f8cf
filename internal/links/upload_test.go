package links

import "testing"

func TestParseUploadList(t *testing.T) {
	text := "№10: https://example.com/a\n" +
		"№11:https://example.com/b\n" +
		"garbage line\n" +
		"№12: https://example.com/c"

	entries := ParseUploadList(text)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Number != 10 || entries[0].URL != "https://example.com/a" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Number != 11 || entries[1].URL != "https://example.com/b" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if entries[2].Number != 12 {
		t.Fatalf("unexpected third entry: %+v", entries[2])
	}
}

func TestParseUploadListNoMatches(t *testing.T) {
	if entries := ParseUploadList("hello\nworld"); len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestNewIssueCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := NewIssueCode()
		if len(code) != issueCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), issueCodeLength)
		}
		for _, c := range code {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
				t.Fatalf("code %q contains invalid character %q", code, c)
			}
		}
		seen[code] = struct{}{}
	}
	// 100 draws from a 36^5 space should essentially never collide down to one value
	if len(seen) < 2 {
		t.Fatalf("codes are not random: %v", seen)
	}
}

func TestNewClaimantCode(t *testing.T) {
	code := NewClaimantCode()
	if len(code) != 8 {
		t.Fatalf("claimant code %q has length %d, want 8", code, len(code))
	}
	if code == NewClaimantCode() {
		t.Fatalf("two claimant codes collided: %q", code)
	}
}
