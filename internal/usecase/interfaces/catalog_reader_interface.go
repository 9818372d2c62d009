package interfaces

import (
	"context"

	"telehealth_flow/internal/domain/entities"
)

// ICatalogReader exposes the administrator-managed read models the orchestrator depends on.
// Lookups by id return the zero value when the id is unknown.
type ICatalogReader interface {
	GetCategory(ctx context.Context, id string) (entities.Category, error)
	GetProduct(ctx context.Context, id string) (entities.Product, error)
	GetSubscriptionDuration(ctx context.Context, id string) (entities.SubscriptionDuration, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
	ListPricingRules(ctx context.Context) ([]entities.PricingRule, error)
	ListFormTemplates(ctx context.Context) ([]entities.FormTemplate, error)
	ListFormMappings(ctx context.Context) ([]entities.FormMapping, error)
}
