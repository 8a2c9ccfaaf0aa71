package core

// DefaultCurrency is used when the user row carries no preference or the
// preference cannot be fetched.
const DefaultCurrency = "USD"

// Currencies lists the selectable currency codes in display order.
var Currencies = []string{
	"USD", "EUR", "GBP", "JPY", "INR", "AUD", "CAD", "CHF", "CNY", "SEK",
	"NZD", "MXN", "SGD", "HKD", "NOK", "KRW", "TRY", "RUB", "BRL", "ZAR",
}

// CurrencySymbols maps a currency code to its display symbol. There is no
// conversion anywhere: the symbol is the only thing a currency change
// affects.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
	"CHF": "CHF",
	"CNY": "¥",
	"SEK": "kr",
	"NZD": "NZ$",
	"MXN": "$",
	"SGD": "S$",
	"HKD": "HK$",
	"NOK": "kr",
	"KRW": "₩",
	"TRY": "₺",
	"RUB": "₽",
	"BRL": "R$",
	"ZAR": "R",
}

// SymbolFor returns the display symbol for a currency code, falling back to
// the dollar sign for unknown codes.
func SymbolFor(code string) string {
	if sym, ok := CurrencySymbols[code]; ok {
		return sym
	}
	return "$"
}

// DefaultCategories seeds a fresh account's category list.
var DefaultCategories = []Category{
	{Name: "Food & Dining", Color: "#F87171"},
	{Name: "Transportation", Color: "#60A5FA"},
	{Name: "Shopping", Color: "#A78BFA"},
	{Name: "Entertainment", Color: "#FBBF24"},
	{Name: "Bills & Utilities", Color: "#34D399"},
	{Name: "Healthcare", Color: "#FB7185"},
	{Name: "Other", Color: "#9CA3AF"},
}
