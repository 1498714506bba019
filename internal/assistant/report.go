package assistant

import (
	"context"
	"database/sql"
	"fmt"
)

// ReportData holds the three rendered sections of a performance report.
type ReportData struct {
	Shop      string
	Analytics string
	Email     string
}

const shopReportSQL = `
    SELECT
        COUNT(DISTINCT o.order_id) AS total_orders,
        SUM(o.order_total) AS total_sales,
        SUM(o.order_discounts) AS total_discounts,
        SUM(o.order_shipping) AS total_shipping,
        SUM(o.order_cost) AS total_cost,
        SUM(o.order_total) / COUNT(DISTINCT o.order_id) AS average_order_value,
        (SUM(o.order_total) - SUM(o.order_cost)) * 1.0 / SUM(o.order_total) AS margin,
        COUNT(DISTINCT CASE WHEN c2.customer_id IS NULL THEN o.customer_id END) AS new_customers
    FROM %[1]s_orders o
    LEFT JOIN (
        SELECT DISTINCT customer_id
        FROM %[1]s_orders
        WHERE DATE(order_date) < DATE(?)
    ) c2 ON o.customer_id = c2.customer_id
    WHERE DATE(o.order_date) BETWEEN DATE(?) AND DATE(?)`

const gaReportSQL = `
    SELECT
        channel_name,
        SUM(channel_sessions) AS total_sessions,
        SUM(channel_carts) AS total_carts,
        SUM(channel_checkouts) AS total_checkouts,
        SUM(channel_transactions) AS total_transactions,
        SUM(channel_revenue) AS total_revenue
    FROM %s_google_analytics
    WHERE DATE(channel_date) BETWEEN DATE(?) AND DATE(?)
    GROUP BY channel_name
    ORDER BY total_sessions DESC`

const emailReportSQL = `
    SELECT
        COUNT(campaign_id) AS total_email_campaigns_sent,
        SUM(delivered_emails) AS total_emails_delivered,
        (CAST(SUM(opens) AS FLOAT) / NULLIF(SUM(delivered_emails), 0)) * 100 AS open_rate,
        (CAST(SUM(clicks) AS FLOAT) / NULLIF(SUM(delivered_emails), 0)) * 100 AS click_through_rate,
        (CAST(SUM(conversions) AS FLOAT) / NULLIF(SUM(delivered_emails), 0)) * 100 AS conversion_rate,
        SUM(conversions) AS total_conversions
    FROM %s_klaviyo_campaigns
    WHERE DATE(sent_time) BETWEEN DATE(?) AND DATE(?)`

var (
	shopReportColumns = []string{
		"Total Orders", "Total Sales", "Total Discounts", "Total Shipping",
		"Total Cost", "AOV", "Margin", "New Customers",
	}
	gaReportColumns = []string{
		"Channel", "Total Sessions", "Total Carts", "Checkout Started",
		"Total Orders", "Total Revenue",
	}
	emailReportColumns = []string{
		"Total Campaigns", "Emails Delivered", "Open Rate",
		"Click Through Rate", "Conversion Rate", "Total Orders",
	}
)

// CollectReportData runs the three fixed report queries over the
// window and renders each section. A new customer is one with no order
// before the window start.
func CollectReportData(ctx context.Context, handle *sql.DB, tenant, startDate, endDate string) (*ReportData, error) {
	shop, err := reportSection(ctx, handle,
		fmt.Sprintf(shopReportSQL, tenant), shopReportColumns,
		startDate, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("shop report: %w", err)
	}

	analytics, err := reportSection(ctx, handle,
		fmt.Sprintf(gaReportSQL, tenant), gaReportColumns,
		startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("analytics report: %w", err)
	}

	email, err := reportSection(ctx, handle,
		fmt.Sprintf(emailReportSQL, tenant), emailReportColumns,
		startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("email report: %w", err)
	}

	return &ReportData{Shop: shop, Analytics: analytics, Email: email}, nil
}

func reportSection(ctx context.Context, handle *sql.DB, query string, columns []string, args ...any) (string, error) {
	rows, err := runQuery(ctx, handle, query, args...)
	if err != nil {
		return "", err
	}
	return Render(columns, rows), nil
}

// Report collects the window's data and has the model annotate each
// section with insights.
func (a *Assistant) Report(ctx context.Context, startDate, endDate string) (string, error) {
	data, err := CollectReportData(ctx, a.handle, a.tenant, startDate, endDate)
	if err != nil {
		return "", err
	}

	today := a.now().Format("2006-01-02")

	shopSummary, err := a.summarizeWith(ctx, fmt.Sprintf(shopSummaryPrompt, today), data.Shop)
	if err != nil {
		return "", err
	}
	gaSummary, err := a.summarizeWith(ctx, fmt.Sprintf(gaSummaryPrompt, today), data.Analytics)
	if err != nil {
		return "", err
	}
	emailSummary, err := a.summarizeWith(ctx, fmt.Sprintf(emailSummaryPrompt, today), data.Email)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\nSummary: %s\n%s\nSummary: %s\n%s\nSummary: %s",
		data.Shop, shopSummary,
		data.Analytics, gaSummary,
		data.Email, emailSummary), nil
}
