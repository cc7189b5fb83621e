package session

import "testing"

func TestCodeFromAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		ok      bool
	}{
		{"code present", "https://plants.example.com/?ticket=AB12CD34", "AB12CD34", true},
		{"code among other params", "https://plants.example.com/?tab=browse&ticket=AB12CD34", "AB12CD34", true},
		{"no code", "https://plants.example.com/", "", false},
		{"empty param", "https://plants.example.com/?ticket=", "", false},
		{"empty address", "", "", false},
		{"malformed address", "://not-a-url?ticket=AB12CD34", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CodeFromAddress(tc.address)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestStripTicketCode(t *testing.T) {
	got := StripTicketCode("https://plants.example.com/?tab=browse&ticket=AB12CD34")
	want := "https://plants.example.com/?tab=browse"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestInviteAddressRoundTrip(t *testing.T) {
	link := InviteAddress("https://plants.example.com", "AB12CD34")
	code, ok := CodeFromAddress(link)
	if !ok || code != "AB12CD34" {
		t.Fatalf("expected code to survive the round trip, got (%q, %v) from %q", code, ok, link)
	}
}
