package cart

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testSettings() CheckoutSettings {
	return CheckoutSettings{
		BaseURL:          "https://checkout.chainfeed.store/cart",
		RefCode:          "chainfeed",
		StandardDiscount: "HODL5",
		HighTierDiscount: "WHALE15",
		QualifyingLine:   decimal.NewFromInt(500),
		ReturnPath:       "/order-complete",
	}
}

func TestCheckoutURLEmptyCart(t *testing.T) {
	t.Parallel()

	if got := BuildCheckoutURL(testSettings(), nil, "https://chainfeed.media"); got != "" {
		t.Fatalf("empty cart must yield empty string, got %q", got)
	}
}

func TestCheckoutURLVariantSegment(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{ID: "x", Price: decimal.NewFromInt(10), Quantity: 2, ExternalVariantID: "v1"},
		{ID: "y", Price: decimal.NewFromInt(5), Quantity: 1, ExternalVariantID: "v2"},
	}

	got := BuildCheckoutURL(testSettings(), lines, "https://chainfeed.media")
	if !strings.HasPrefix(got, "https://checkout.chainfeed.store/cart/v1:2,v2:1?") {
		t.Fatalf("unexpected url prefix: %q", got)
	}

	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("checkout url must parse: %v", err)
	}
	query := parsed.Query()
	if query.Get("ref") != "chainfeed" {
		t.Fatalf("expected ref=chainfeed, got %q", query.Get("ref"))
	}
	if query.Get("discount") != "HODL5" {
		t.Fatalf("expected standard discount, got %q", query.Get("discount"))
	}
	if query.Get("return_to") != "https://chainfeed.media/order-complete" {
		t.Fatalf("unexpected return_to: %q", query.Get("return_to"))
	}
}

func TestCheckoutURLExcludesVariantlessLines(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{ID: "x", Price: decimal.NewFromInt(10), Quantity: 1, ExternalVariantID: ""},
		{ID: "y", Price: decimal.NewFromInt(5), Quantity: 3, ExternalVariantID: "v2"},
	}

	got := BuildCheckoutURL(testSettings(), lines, "https://chainfeed.media")
	if strings.Contains(got, "x:") {
		t.Fatalf("variantless line leaked into segment: %q", got)
	}
	if !strings.Contains(got, "/v2:3?") {
		t.Fatalf("expected v2:3 segment, got %q", got)
	}
}

func TestCheckoutURLEmptySegmentStillEmitsParams(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{ID: "x", Price: decimal.NewFromInt(10), Quantity: 1, ExternalVariantID: ""},
	}

	got := BuildCheckoutURL(testSettings(), lines, "https://chainfeed.media")
	if !strings.HasPrefix(got, "https://checkout.chainfeed.store/cart/?ref=") {
		t.Fatalf("expected empty segment with params, got %q", got)
	}
}

func TestCheckoutURLDiscountTieBreakIsPerLine(t *testing.T) {
	t.Parallel()

	// One $500 line qualifies.
	qualifying := []Line{
		{ID: "x", Price: decimal.NewFromInt(500), Quantity: 1, ExternalVariantID: "v1"},
	}
	got := BuildCheckoutURL(testSettings(), qualifying, "https://chainfeed.media")
	if !strings.Contains(got, "discount=WHALE15") {
		t.Fatalf("single $500 line must select high tier, got %q", got)
	}

	// Two $300 lines total $600 but no single line reaches $500.
	split := []Line{
		{ID: "a", Price: decimal.NewFromInt(300), Quantity: 1, ExternalVariantID: "v1"},
		{ID: "b", Price: decimal.NewFromInt(300), Quantity: 1, ExternalVariantID: "v2"},
	}
	got = BuildCheckoutURL(testSettings(), split, "https://chainfeed.media")
	if !strings.Contains(got, "discount=HODL5") {
		t.Fatalf("split cart must select standard tier, got %q", got)
	}

	// Quantity counts toward a line's subtotal.
	byQuantity := []Line{
		{ID: "c", Price: decimal.NewFromInt(250), Quantity: 2, ExternalVariantID: "v1"},
	}
	got = BuildCheckoutURL(testSettings(), byQuantity, "https://chainfeed.media")
	if !strings.Contains(got, "discount=WHALE15") {
		t.Fatalf("250x2 line must qualify, got %q", got)
	}
}

func TestCheckoutURLEncodesReturnTo(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{ID: "x", Price: decimal.NewFromInt(10), Quantity: 1, ExternalVariantID: "v1"},
	}

	got := BuildCheckoutURL(testSettings(), lines, "https://chainfeed.media/")
	if !strings.Contains(got, "return_to="+url.QueryEscape("https://chainfeed.media/order-complete")) {
		t.Fatalf("return_to must be encoded origin plus path, got %q", got)
	}
}
