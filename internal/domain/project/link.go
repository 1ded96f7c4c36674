package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinkTotals is the (distinct document count, subtotal sum) pair for one analytic key
type LinkTotals struct {
	Count int64
	Total decimal.Decimal
}

// PurchaseInfo holds the derived purchase counters of a project
type PurchaseInfo struct {
	PurchaseCount     int64
	PurchaseLineTotal decimal.Decimal
}

// PurchaseInvoiceInfo holds the derived purchase invoice counters of a project
type PurchaseInvoiceInfo struct {
	PurchaseInvoiceCount     int64
	PurchaseInvoiceLineTotal decimal.Decimal
}

// SaleInfo holds the derived sale counters of a project
type SaleInfo struct {
	SaleOrderCount       int64
	CustomerInvoiceCount int64
}

// PurchaseLinkReader queries non-cancelled purchase and accounting lines whose
// analytic distribution contains one of the given account keys.
// Totals maps are keyed by account key; keys without matches are absent.
type PurchaseLinkReader interface {
	PurchaseTotalsByAccount(ctx context.Context, accountKeys []string) (map[string]LinkTotals, error)
	PurchaseOrderIDs(ctx context.Context, accountKeys []string) ([]uuid.UUID, error)
	PurchaseOrderLineIDs(ctx context.Context, accountKeys []string) ([]uuid.UUID, error)

	InvoiceTotalsByAccount(ctx context.Context, accountKeys []string) (map[string]LinkTotals, error)
	InvoiceIDs(ctx context.Context, accountKeys []string) ([]uuid.UUID, error)
	InvoiceLineIDs(ctx context.Context, accountKeys []string) ([]uuid.UUID, error)
}

// SaleLinkReader queries non-cancelled sales orders and customer invoices of projects.
// Count maps are keyed by project id; projects without matches are absent.
type SaleLinkReader interface {
	SaleOrderCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	CustomerInvoiceCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	SaleOrderIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	CustomerInvoiceIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
}
