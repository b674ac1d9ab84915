package payment

import "testing"

func seedDetails() Details {
	return Details{
		IBAN:           "DE89 3704 0044 0532 0130 00",
		AccountName:    "Acme Retail GmbH",
		Contact:        "@acme_support",
		CryptoContact:  "@acme_crypto",
		MethodsContact: "@acme_guides",
	}
}

func TestNewStoreValidatesSeed(t *testing.T) {
	if _, err := NewStore(Details{AccountName: "x"}); err == nil {
		t.Fatal("expected error for empty iban")
	}
	if _, err := NewStore(Details{IBAN: "x"}); err == nil {
		t.Fatal("expected error for empty account name")
	}
	if _, err := NewStore(seedDetails()); err != nil {
		t.Fatalf("valid seed rejected: %v", err)
	}
}

func TestUpdateField(t *testing.T) {
	s, err := NewStore(seedDetails())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateField(FieldIBAN, "FR76 3000 6000 0112 3456 7890 189"); err != nil {
		t.Fatalf("UpdateField(iban) failed: %v", err)
	}
	if got := s.Snapshot().IBAN; got != "FR76 3000 6000 0112 3456 7890 189" {
		t.Fatalf("IBAN after update = %q", got)
	}

	if err := s.UpdateField("tax_id", "123"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := s.UpdateField(FieldContact, "   "); err == nil {
		t.Fatal("expected error for blank value")
	}
	if got := s.Snapshot().Contact; got != "@acme_support" {
		t.Fatalf("Contact mutated by rejected update: %q", got)
	}
}

func TestFieldsCoverEveryDetail(t *testing.T) {
	s, err := NewStore(seedDetails())
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range Fields() {
		if err := s.UpdateField(f, "updated-"+f); err != nil {
			t.Errorf("UpdateField(%q) failed: %v", f, err)
		}
		if FieldLabel(f) == "" {
			t.Errorf("FieldLabel(%q) empty", f)
		}
	}

	d := s.Snapshot()
	want := Details{
		IBAN:           "updated-" + FieldIBAN,
		AccountName:    "updated-" + FieldAccountName,
		Contact:        "updated-" + FieldContact,
		CryptoContact:  "updated-" + FieldCryptoContact,
		MethodsContact: "updated-" + FieldMethodsContact,
	}
	if d != want {
		t.Fatalf("details after full update = %+v, want %+v", d, want)
	}
}
