package game

import "testing"

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "player"},
		{in: "Big.Mike", want: "big_mike"},
		{in: "ab", want: "player_ab"},
		{in: "__x__", want: "player_x"},
		{in: "averyveryverylongusername_here", want: "averyveryverylongusernam"},
		{in: "superadmin", want: "player"},
	}
	for _, tc := range tests {
		if got := sanitizeUsername(tc.in); got != tc.want {
			t.Fatalf("sanitizeUsername(%q) got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestUsernameFromEmail(t *testing.T) {
	if got := usernameFromEmail("Hustler99@example.com"); got != "hustler99" {
		t.Fatalf("unexpected username %q", got)
	}
	if got := usernameFromEmail("@example.com"); got != "player" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"yn_king", "Dre2024", "abc"}
	for _, name := range valid {
		if !ValidUsername(name) {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	invalid := []string{"ab", "has space", "admin_guy", "x!y!z"}
	for _, name := range invalid {
		if ValidUsername(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}
