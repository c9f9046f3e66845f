package cart

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/chainfeed/storefront-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// CheckoutSettings carries the fixed pieces of the external checkout
// redirect: the provider's base URL, the referral code, and the two
// discount code tiers.
type CheckoutSettings struct {
	BaseURL          string
	RefCode          string
	StandardDiscount string
	HighTierDiscount string
	QualifyingLine   decimal.Decimal
	ReturnPath       string
}

// SettingsFromConfig resolves checkout settings from the loaded config.
func SettingsFromConfig(cfg config.CheckoutConfig) CheckoutSettings {
	return CheckoutSettings{
		BaseURL:          cfg.BaseURL,
		RefCode:          cfg.RefCode,
		StandardDiscount: cfg.StandardDiscount,
		HighTierDiscount: cfg.HighTierDiscount,
		QualifyingLine:   cfg.Threshold(),
		ReturnPath:       cfg.ReturnPath,
	}
}

// BuildCheckoutURL synthesizes the provider redirect for the given lines.
// An empty cart yields an empty string, which callers must treat as
// "cannot proceed" rather than a navigable URL.
//
// Lines without an external variant id are excluded from the variant
// segment but still count toward totals, so the segment can be empty while
// the query parameters are still emitted. The discount tier is decided per
// line: any single line whose subtotal reaches the qualifying threshold
// selects the high tier, regardless of the cart's grand total.
func BuildCheckoutURL(settings CheckoutSettings, lines []Line, origin string) string {
	if len(lines) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(lines))
	qualifies := false
	for _, line := range lines {
		if line.Subtotal().GreaterThanOrEqual(settings.QualifyingLine) {
			qualifies = true
		}
		if line.ExternalVariantID == "" {
			continue
		}
		pairs = append(pairs, line.ExternalVariantID+":"+strconv.Itoa(line.Quantity))
	}

	discount := settings.StandardDiscount
	if qualifies {
		discount = settings.HighTierDiscount
	}

	returnTo := strings.TrimRight(origin, "/") + settings.ReturnPath

	var b strings.Builder
	b.WriteString(strings.TrimRight(settings.BaseURL, "/"))
	b.WriteString("/")
	b.WriteString(strings.Join(pairs, ","))
	b.WriteString("?ref=")
	b.WriteString(url.QueryEscape(settings.RefCode))
	b.WriteString("&discount=")
	b.WriteString(url.QueryEscape(discount))
	b.WriteString("&return_to=")
	b.WriteString(url.QueryEscape(returnTo))
	return b.String()
}
