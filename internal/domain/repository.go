package domain

import "context"

// ProductSource defines the interface for the external product catalog
type ProductSource interface {
	Search(ctx context.Context, query string, page, pageSize int) ([]RawProductRecord, error)
	FetchByCode(ctx context.Context, barcode string) (*RawProductRecord, error)
}

// ProductStore defines the interface for local product persistence. The core
// only ever loads or replaces the full product set; persistence format and
// location are up to the implementation.
type ProductStore interface {
	LoadAll(ctx context.Context) ([]Product, error)
	SaveAll(ctx context.Context, products []Product) error
	DeleteAll(ctx context.Context) error
}
