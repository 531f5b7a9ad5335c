package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount groups thousands with commas (21000 -> "21,000").
func FormatAmount(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}

// FormatPrice renders an amount the way the storefront labels prices ("21,000/=").
func FormatPrice(amount int64) string {
	return FormatAmount(amount) + "/="
}
