package order

import (
	"fmt"
	"net/url"
	"strings"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/payment"
	"ds-storefront/internal/utils"
)

const (
	DefaultRecipient = "94703600072"
	linkBase         = "https://wa.me/"

	defaultCompany      = "N/A"
	defaultRequirements = "None"
)

// FormatText renders the order exactly as the shop operator expects to read
// it: bold headers with *, italics with _, one line per field.
func FormatText(c Contact, items []cart.LineItem, total int64, bank payment.BankDetails) string {
	company := c.Company
	if company == "" {
		company = defaultCompany
	}
	requirements := c.Requirements
	if requirements == "" {
		requirements = defaultRequirements
	}

	lines := []string{
		"*NEW ORDER - DS CREATIONS*",
		"",
		"*Customer Details:*",
		"Name: " + c.FullName,
		"Email: " + c.Email,
		"Phone: " + c.Phone,
		"Company: " + company,
		"",
		"*Order Items:*",
	}

	for i, it := range items {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, it.Template),
			"   - Package: "+it.Package,
			"   - Category: "+it.Category,
			"   - Price: "+utils.FormatPrice(it.Price),
		)
	}

	lines = append(lines,
		"",
		"*Total Amount: "+utils.FormatPrice(total)+"*",
		"",
		"*Payment Method:* "+payment.MethodBankTransfer,
		"",
		"*Bank Details for Payment:*",
	)
	lines = append(lines, bank.Lines()...)
	lines = append(lines,
		"",
		"*Additional Requirements:*",
		requirements,
		"",
		"_"+payment.ReceiptReminder+"_",
	)

	return strings.Join(lines, "\n")
}

// EncodeText escapes the text for the query string. Spaces become %20 and
// line breaks %0A.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func BuildLink(recipient, text string) string {
	return linkBase + recipient + "?text=" + EncodeText(text)
}
