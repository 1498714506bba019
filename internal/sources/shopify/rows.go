// Package shopify syncs orders, customers and line items from the
// Shopify Admin GraphQL API.
package shopify

import (
	"github.com/tidwall/gjson"

	"github.com/commercedata/shopsync/internal/normalize"
)

// Sentinel for orders with no resolvable customer. Shopify customer ids
// are numeric strings, so this cannot collide with a real id. All
// customerless orders collapse into this one synthetic customer per
// tenant.
const (
	UnknownCustomerID   = "unknown"
	UnknownCustomerName = "N/A"
)

// BuildOrders normalizes one page of raw order edges into orders rows.
// Missing optional fields degrade to sentinels; a missing required
// money amount or an unparseable date fails the page with FormatError.
func BuildOrders(page []byte) ([][]any, error) {
	var rows [][]any
	for _, edge := range gjson.ParseBytes(page).Array() {
		node := edge.Get("node")
		raw := []byte(node.Raw)

		date, err := normalize.ParseDate(node.Get("processedAt").String())
		if err != nil {
			return nil, err
		}
		total, err := normalize.RequiredMoney(raw, "totalPriceSet.shopMoney.amount")
		if err != nil {
			return nil, err
		}
		discounts, err := normalize.RequiredMoney(raw, "totalDiscountsSet.shopMoney.amount")
		if err != nil {
			return nil, err
		}
		shipping, err := normalize.RequiredMoney(raw, "totalShippingPriceSet.shopMoney.amount")
		if err != nil {
			return nil, err
		}

		customerID, customerName := customerRef(node)

		rows = append(rows, []any{
			normalize.TrimIDPrefix(node.Get("id").String()),
			date,
			node.Get("name").String(),
			normalize.RoundMoney(total),
			normalize.RoundMoney(orderCost(node.Get("lineItems.edges"))),
			normalize.DedupeTags(normalize.TagStrings(node.Get("tags"))),
			normalize.RoundMoney(discounts),
			normalize.RoundMoney(shipping),
			node.Get("sourceName").String(),
			customerID,
			customerName,
		})
	}
	return rows, nil
}

// BuildCustomers normalizes one page of raw order edges into customer
// rows. Orders without a customer yield the sentinel row; first write
// wins at load time, so repeats inside a page are harmless.
func BuildCustomers(page []byte) [][]any {
	var rows [][]any
	for _, edge := range gjson.ParseBytes(page).Array() {
		customer := edge.Get("node.customer")

		if !customer.Exists() || customer.Type == gjson.Null || !customer.Get("id").Exists() {
			rows = append(rows, []any{
				UnknownCustomerID, UnknownCustomerName,
				nil, nil, nil, nil, nil, nil, nil,
			})
			continue
		}

		address := customer.Get("defaultAddress")
		rows = append(rows, []any{
			normalize.TrimIDPrefix(customer.Get("id").String()),
			customer.Get("displayName").String(),
			nullString(customer, "email"),
			nullString(address, "city"),
			nullString(address, "provinceCode"),
			nullString(address, "countryCodeV2"),
			nullString(address, "province"),
			nullString(address, "country"),
			tagsOrNil(customer.Get("tags")),
		})
	}
	return rows
}

// BuildLineItems flattens one page of raw order edges into line-item
// rows, one per line-item edge. order_id and customer_id reference the
// rows the other builders produce from the same page.
func BuildLineItems(page []byte) ([][]any, error) {
	var rows [][]any
	for _, edge := range gjson.ParseBytes(page).Array() {
		node := edge.Get("node")
		orderID := normalize.TrimIDPrefix(node.Get("id").String())
		orderName := node.Get("name").String()
		customerID, _ := customerRef(node)

		for _, lineEdge := range node.Get("lineItems.edges").Array() {
			line := lineEdge.Get("node")
			lineRaw := []byte(line.Raw)

			quantity := line.Get("quantity").Int()
			if quantity <= 0 {
				// Unit price and discount are per-unit derivations; a
				// zero-quantity edge carries nothing to divide over.
				continue
			}

			discount, err := normalize.RequiredMoney(lineRaw, "totalDiscountSet.shopMoney.amount")
			if err != nil {
				return nil, err
			}

			var unitPrice any
			msrp := line.Get("originalUnitPriceSet.shopMoney.amount")
			if msrp.Exists() && msrp.Type != gjson.Null {
				price := normalize.OptionalMoney(lineRaw, "originalUnitPriceSet.shopMoney.amount")
				unitPrice = normalize.RoundMoney((price*float64(quantity) - discount) / float64(quantity))
			}

			product := line.Get("product")
			rows = append(rows, []any{
				normalize.TrimIDPrefix(line.Get("id").String()),
				orderID,
				orderName,
				customerID,
				lineSKU(line),
				line.Get("title").String(),
				nullString(product, "vendor"),
				quantity,
				unitPrice,
				nullMoney(line, "variant.inventoryItem.unitCost.amount"),
				normalize.RoundMoney(discount / float64(quantity)),
				productID(product),
				tagsOrNil(product.Get("tags")),
			})
		}
	}
	return rows, nil
}

// orderCost sums quantity times unit cost across an order's line items.
// Cost data is frequently absent upstream; missing unit cost counts as
// zero.
func orderCost(lineEdges gjson.Result) float64 {
	total := 0.0
	for _, edge := range lineEdges.Array() {
		item := edge.Get("node")
		quantity := float64(item.Get("quantity").Int())
		cost := normalize.OptionalMoney([]byte(item.Raw), "variant.inventoryItem.unitCost.amount")
		total += quantity * cost
	}
	return total
}

// customerRef resolves the order's customer reference, degrading to the
// sentinel pair when the platform returns no customer.
func customerRef(node gjson.Result) (string, string) {
	customer := node.Get("customer")
	id := customer.Get("id")
	if !id.Exists() || id.Type == gjson.Null {
		return UnknownCustomerID, UnknownCustomerName
	}
	name := customer.Get("displayName")
	if !name.Exists() || name.Type == gjson.Null {
		return normalize.TrimIDPrefix(id.String()), UnknownCustomerName
	}
	return normalize.TrimIDPrefix(id.String()), name.String()
}

// lineSKU falls back to the first custom attribute value when the SKU
// is null.
func lineSKU(line gjson.Result) any {
	sku := line.Get("sku")
	if sku.Exists() && sku.Type != gjson.Null && sku.String() != "" {
		return sku.String()
	}
	fallback := line.Get("customAttributes.0.value")
	if fallback.Exists() && fallback.Type != gjson.Null {
		return fallback.String()
	}
	return nil
}

func productID(product gjson.Result) any {
	id := product.Get("id")
	if !id.Exists() || id.Type == gjson.Null {
		return nil
	}
	return normalize.TrimIDPrefix(id.String())
}

func nullString(parent gjson.Result, path string) any {
	result := parent.Get(path)
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}
	return result.String()
}

func nullMoney(parent gjson.Result, path string) any {
	result := parent.Get(path)
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}
	return normalize.OptionalMoney([]byte(parent.Raw), path)
}

func tagsOrNil(tags gjson.Result) any {
	if !tags.IsArray() {
		return nil
	}
	return normalize.DedupeTags(normalize.TagStrings(tags))
}
