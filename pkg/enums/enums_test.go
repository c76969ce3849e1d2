package enums

import "testing"

func TestParseRole(t *testing.T) {
	for _, value := range []string{"admin", "pharmacist", "cashier"} {
		role, err := ParseRole(value)
		if err != nil {
			t.Fatalf("parse role %q: %v", value, err)
		}
		if !role.IsValid() {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestParsePaymentMode(t *testing.T) {
	for _, value := range []string{"cash", "card", "upi", "credit"} {
		mode, err := ParsePaymentMode(value)
		if err != nil {
			t.Fatalf("parse payment mode %q: %v", value, err)
		}
		if !mode.IsValid() {
			t.Fatalf("expected %q to be valid", value)
		}
	}
	if _, err := ParsePaymentMode("cheque"); err == nil {
		t.Fatal("expected error for unknown payment mode")
	}
}
