package datagen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

var (
	salesChannels = []string{"web", "pos", "iphone", "android"}
	orderTags     = []string{"wholesale", "vip", "gift", "subscription", "preorder"}
	productTags   = []string{"summer", "clearance", "new", "bestseller"}
)

// OrderGenerator produces pages of synthetic orders shaped like the
// Shopify Admin GraphQL payload, so seeded data flows through the same
// normalization path as a live sync.
type OrderGenerator struct {
	faker *Faker
	start time.Time
	end   time.Time
	seq   int
}

// NewOrderGenerator creates a generator for orders dated inside the
// given window (YYYY-MM-DD, inclusive start).
func NewOrderGenerator(seed uint64, startDate, endDate string) (*OrderGenerator, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end date %s is not after start date %s", endDate, startDate)
	}
	return &OrderGenerator{
		faker: NewFakerWithSeed(seed),
		start: start,
		end:   end,
	}, nil
}

// Page returns one page of order edges as a JSON array.
func (g *OrderGenerator) Page(size int) ([]byte, error) {
	edges := make([]map[string]any, 0, size)
	for i := 0; i < size; i++ {
		edges = append(edges, map[string]any{"node": g.order()})
	}
	return json.Marshal(edges)
}

func (g *OrderGenerator) order() map[string]any {
	g.seq++
	orderNum := 1000 + g.seq

	numLines := g.faker.Int(1, 4)
	lines := make([]map[string]any, 0, numLines)
	subtotal := 0.0
	discounts := 0.0
	for j := 0; j < numLines; j++ {
		line, lineTotal, lineDiscount := g.lineItem(orderNum, j)
		lines = append(lines, map[string]any{"node": line})
		subtotal += lineTotal
		discounts += lineDiscount
	}

	shipping := 0.0
	if g.faker.Bool() {
		shipping = g.faker.Float64(3, 15)
	}
	total := subtotal - discounts + shipping

	tags := []string{}
	if g.faker.Int(1, 4) == 1 {
		tags = append(tags, Choose(g.faker, orderTags))
	}

	node := map[string]any{
		"id":                    fmt.Sprintf("gid://shopify/Order/%d", orderNum),
		"name":                  fmt.Sprintf("#%d", orderNum),
		"processedAt":           g.faker.DateRange(g.start, g.end).UTC().Format(time.RFC3339),
		"sourceName":            Choose(g.faker, salesChannels),
		"tags":                  tags,
		"totalPriceSet":         money(total),
		"totalDiscountsSet":     money(discounts),
		"totalShippingPriceSet": money(shipping),
		"lineItems":             map[string]any{"edges": lines},
	}

	// Roughly one order in eight is a guest checkout with no customer.
	if g.faker.Int(1, 8) > 1 {
		node["customer"] = g.customer()
	}
	return node
}

func (g *OrderGenerator) lineItem(orderNum, index int) (map[string]any, float64, float64) {
	quantity := g.faker.Int(1, 3)
	price := g.faker.Float64(8, 120)
	cost := price * g.faker.Float64(0.3, 0.6)

	discount := 0.0
	if g.faker.Int(1, 3) == 1 {
		discount = price * float64(quantity) * g.faker.Float64(0.05, 0.25)
	}

	productNum := g.faker.Int(1, 400)
	line := map[string]any{
		"id":                   fmt.Sprintf("gid://shopify/LineItem/%d%02d", orderNum, index),
		"sku":                  fmt.Sprintf("SKU-%04d", productNum),
		"title":                g.faker.ProductName(),
		"quantity":             quantity,
		"originalUnitPriceSet": money(price),
		"totalDiscountSet":     money(discount),
		"product": map[string]any{
			"id":     fmt.Sprintf("gid://shopify/Product/%d", productNum),
			"vendor": g.faker.Company(),
			"tags":   []string{Choose(g.faker, productTags)},
		},
		"variant": map[string]any{
			"inventoryItem": map[string]any{
				"unitCost": map[string]any{"amount": amount(cost)},
			},
		},
	}
	return line, price * float64(quantity), discount
}

func (g *OrderGenerator) customer() map[string]any {
	customerNum := g.faker.Int(1, 300)
	node := map[string]any{
		"id":          fmt.Sprintf("gid://shopify/Customer/%d", customerNum),
		"displayName": g.faker.Name(),
		"email":       g.faker.Email(),
		"tags":        []string{},
		"defaultAddress": map[string]any{
			"city":          g.faker.City(),
			"provinceCode":  g.faker.State(),
			"countryCodeV2": "US",
			"province":      g.faker.StateName(),
			"country":       "United States",
		},
	}
	return node
}

func money(v float64) map[string]any {
	return map[string]any{
		"shopMoney": map[string]any{"amount": amount(v)},
	}
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
