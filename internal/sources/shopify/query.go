package shopify

import "strings"

// ordersQuery is the Admin GraphQL document for one page of orders.
// The cursor splice is empty on the first page; date bounds come from
// the sync window.
const ordersQuery = `
{
  orders(
   first: 250
   query: "created_at:>='__START__T00:00:00-06:00' AND created_at:<='__END__T00:00:00-06:00'"
   __CURSOR__
   ) {
    edges {
      node {
        id
        createdAt
        updatedAt
        processedAt
        name
        sourceName
        tags
        totalDiscountsSet {
          shopMoney {
            amount
          }
        }
        totalShippingPriceSet {
          shopMoney {
            amount
          }
        }
        totalPriceSet {
          shopMoney {
            amount
          }
        }
        lineItems(first: 250) {
          edges {
            node {
              product {
                id
                tags
                vendor
              }
              id
              sku
              quantity
              title
              customAttributes {
                key
                value
              }
              originalUnitPriceSet {
                shopMoney {
                  amount
                }
              }
              totalDiscountSet {
                shopMoney {
                  amount
                }
              }
              variant {
                price
                inventoryItem {
                  unitCost {
                    amount
                  }
                }
              }
            }
          }
        }
        customer {
          id
          displayName
          tags
          email
          defaultAddress {
            city
            province
            provinceCode
            country
            countryCodeV2
          }
        }
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// buildQuery splices the sync window and the optional continuation
// cursor into the orders document.
func buildQuery(startDate, endDate, cursor string) string {
	splice := ""
	if cursor != "" {
		splice = `after: "` + cursor + `"`
	}
	return strings.NewReplacer(
		"__START__", startDate,
		"__END__", endDate,
		"__CURSOR__", splice,
	).Replace(ordersQuery)
}
