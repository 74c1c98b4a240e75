package types

// AdminItemType tags the feed item variants.
type AdminItemType string

const (
	ItemMenu    AdminItemType = "menu"
	ItemNews    AdminItemType = "news"
	ItemAdImage AdminItemType = "ad-image"
	ItemAdText  AdminItemType = "ad-text"
)

// AdminItem is one entry in the curated feed column. Each variant uses a
// subset of the optional fields; the list the items live in carries the
// display order, so there is no separate position field.
type AdminItem struct {
	ID              string        `json:"id"`
	Type            AdminItemType `json:"type"`
	Title           string        `json:"title,omitempty"`
	Content         string        `json:"content,omitempty"`
	ImageURL        string        `json:"imageUrl,omitempty"`
	LinkURL         string        `json:"linkUrl,omitempty"`
	Date            string        `json:"date,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	TextColor       string        `json:"textColor,omitempty"`
}

// PaymentConfig holds the six external checkout links, one per advertising
// plan and billing cycle.
type PaymentConfig struct {
	TextMonthly  string `json:"textMonthly"`
	TextYearly   string `json:"textYearly"`
	ImageMonthly string `json:"imageMonthly"`
	ImageYearly  string `json:"imageYearly"`
	BothMonthly  string `json:"bothMonthly"`
	BothYearly   string `json:"bothYearly"`
}

// PlaceholderLink is used for every payment link until the admin configures
// a real checkout URL.
const PlaceholderLink = "#"

// DefaultPaymentConfig returns the placeholder configuration.
func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{
		TextMonthly:  PlaceholderLink,
		TextYearly:   PlaceholderLink,
		ImageMonthly: PlaceholderLink,
		ImageYearly:  PlaceholderLink,
		BothMonthly:  PlaceholderLink,
		BothYearly:   PlaceholderLink,
	}
}
