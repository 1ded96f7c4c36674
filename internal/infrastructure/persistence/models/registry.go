package models

// All returns every model, in dependency order, for AutoMigrate in tests and
// local development. Production schemas come from the SQL migrations.
func All() []any {
	return []any{
		&AnalyticAccountModel{},
		&ProjectModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderLineModel{},
		&AccountMoveModel{},
		&AccountMoveLineModel{},
		&SaleOrderModel{},
		&SaleOrderLineModel{},
		&WindowActionModel{},
	}
}
