// Package templates renders customer-facing reply text from the current
// payment details and input parameters. All functions are pure; the
// configured IBAN and contact handles are embedded verbatim.
package templates

import (
	"fmt"
	"strings"

	"github.com/babyGialo/sigmabot/internal/payment"
)

// Payment renders the bank-transfer instructions for an order amount.
// Amount is free-form text ("500 EUR", "variable amount").
func Payment(d payment.Details, amount string) string {
	var b strings.Builder
	b.WriteString("💳 *PAYMENT DETAILS*\n\n")
	if amount != "" {
		fmt.Fprintf(&b, "💰 Amount: %s\n\n", amount)
	}
	b.WriteString("🏦 *Bank transfer:*\n")
	fmt.Fprintf(&b, "IBAN: `%s`\n", d.IBAN)
	fmt.Fprintf(&b, "Account name: `%s`\n\n", d.AccountName)
	b.WriteString("📸 Please send a screenshot after payment.\n\n")
	if d.Contact != "" {
		fmt.Fprintf(&b, "📞 Support: %s\n\n", d.Contact)
	}
	b.WriteString("⚠️ *Important:*\n")
	b.WriteString("• Include your username in the transfer description\n")
	b.WriteString("• Orders are processed within 24 hours after confirmation")
	return b.String()
}

// Crypto renders the crypto-payment contact card.
func Crypto(d payment.Details) string {
	contact := d.CryptoContact
	if contact == "" {
		contact = d.Contact
	}
	var b strings.Builder
	b.WriteString("₿ *CRYPTO PAYMENT*\n\n")
	fmt.Fprintf(&b, "Contact %s for:\n", contact)
	b.WriteString("• Wallet address (BTC/ETH/USDT)\n")
	b.WriteString("• Current exchange rate\n")
	b.WriteString("• Payment confirmation\n\n")
	b.WriteString("⚠️ Include your username in the payment note.")
	return b.String()
}

// Methods renders the guides-catalog contact card.
func Methods(d payment.Details) string {
	contact := d.MethodsContact
	if contact == "" {
		contact = d.Contact
	}
	var b strings.Builder
	b.WriteString("📚 *GUIDES*\n\n")
	fmt.Fprintf(&b, "Contact %s for:\n", contact)
	b.WriteString("• Catalog and availability\n")
	b.WriteString("• Prices and payment instructions\n")
	b.WriteString("• Setup help")
	return b.String()
}
