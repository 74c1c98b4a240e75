package nutrition

import (
	"fmt"
	"net/url"

	"dailydose/internal/types"
)

// ShopSearchURL builds the outbound "Buy / Prices" link for a recommended
// product: a shopping search query for the product name plus the species.
func ShopSearchURL(rec types.ProductRecommendation, species types.Species) string {
	q := url.QueryEscape(fmt.Sprintf("%s for %s", rec.Name, species))
	return "https://www.google.com/search?tbm=shop&q=" + q
}
