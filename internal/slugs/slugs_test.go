package slugs

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"iso_8601", "iso_8601"},
		{"24_hour", "24_hour"},
		{"Fiscal Quarter", "fiscal_quarter"},
		{"fiscal-quarter", "fiscal_quarter"},
		{"  Leading and trailing  ", "leading_and_trailing"},
		{"Special: Characters!", "special_characters"},
		{"STRFTIME", "strftime"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Name(tt.in); got != tt.want {
				t.Fatalf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	got := Names([]string{"US", "", "World Wide"})
	if len(got) != 2 || got[0] != "us" || got[1] != "world_wide" {
		t.Fatalf("Names() = %v", got)
	}
}
