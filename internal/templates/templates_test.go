package templates

import (
	"strings"
	"testing"

	"github.com/babyGialo/sigmabot/internal/payment"
)

var testDetails = payment.Details{
	IBAN:           "DE89 3704 0044 0532 0130 00",
	AccountName:    "Acme Retail GmbH",
	Contact:        "@acme_support",
	CryptoContact:  "@acme_crypto",
	MethodsContact: "@acme_guides",
}

func TestPaymentRendersDetailsVerbatim(t *testing.T) {
	got := Payment(testDetails, "500 EUR")

	for _, want := range []string{
		testDetails.IBAN,
		testDetails.AccountName,
		testDetails.Contact,
		"500 EUR",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Payment output missing %q:\n%s", want, got)
		}
	}
}

func TestPaymentOmitsEmptyAmount(t *testing.T) {
	got := Payment(testDetails, "")
	if strings.Contains(got, "Amount:") {
		t.Errorf("Payment with empty amount should omit amount line:\n%s", got)
	}
	if !strings.Contains(got, testDetails.IBAN) {
		t.Errorf("Payment output missing IBAN:\n%s", got)
	}
}

func TestCryptoUsesDedicatedContact(t *testing.T) {
	if got := Crypto(testDetails); !strings.Contains(got, "@acme_crypto") {
		t.Errorf("Crypto output missing crypto contact:\n%s", got)
	}

	noCrypto := testDetails
	noCrypto.CryptoContact = ""
	if got := Crypto(noCrypto); !strings.Contains(got, "@acme_support") {
		t.Errorf("Crypto output should fall back to main contact:\n%s", got)
	}
}

func TestMethodsUsesDedicatedContact(t *testing.T) {
	if got := Methods(testDetails); !strings.Contains(got, "@acme_guides") {
		t.Errorf("Methods output missing guides contact:\n%s", got)
	}
}

func TestTemplatesAreDeterministic(t *testing.T) {
	if Payment(testDetails, "400 EUR") != Payment(testDetails, "400 EUR") {
		t.Error("Payment is not deterministic")
	}
	if Crypto(testDetails) != Crypto(testDetails) {
		t.Error("Crypto is not deterministic")
	}
}
