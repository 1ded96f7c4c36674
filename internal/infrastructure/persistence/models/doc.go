// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// domain type with ToDomain and a FromDomain constructor.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - analytic.go, project.go: analytic accounts and projects
//   - purchase.go: purchase orders and lines
//   - accounting.go: account moves and lines
//   - sale.go: sales orders and lines
//   - action.go: stored window actions
//   - registry.go: the model list for AutoMigrate
package models
