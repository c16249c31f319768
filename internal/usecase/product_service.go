package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/skinsight/backend/internal/domain"
	"github.com/skinsight/backend/internal/infrastructure/openbeautyfacts"
)

// randomSearchTerms is the fixed vocabulary FetchRandom draws from
var randomSearchTerms = []string{
	"cleanser", "moisturizer", "serum", "sunscreen", "shampoo",
	"conditioner", "lipstick", "foundation", "mascara", "toner",
}

// ProductService orchestrates the catalog client, the mapper and the local
// product store. This is the only surface the delivery layer talks to.
type ProductService struct {
	source domain.ProductSource
	store  domain.ProductStore
}

// NewProductService creates a new product service with dependencies
func NewProductService(source domain.ProductSource, store domain.ProductStore) *ProductService {
	return &ProductService{
		source: source,
		store:  store,
	}
}

// Search runs a catalog search, normalizes each surviving record and merges
// the batch into the cache. The returned slice is the normalized batch from
// this call, not the merged cache.
func (s *ProductService) Search(ctx context.Context, query string, page, pageSize int) ([]domain.Product, error) {
	records, err := s.source.Search(ctx, strings.TrimSpace(query), page, pageSize)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, *openbeautyfacts.MapToProduct(&records[i]))
	}

	if len(products) > 0 {
		s.mergeIntoCache(ctx, products)
	}

	return products, nil
}

// FetchByCode looks a product up by barcode and upserts a hit into the cache.
// A miss returns (nil, nil), never an error.
func (s *ProductService) FetchByCode(ctx context.Context, barcode string) (*domain.Product, error) {
	record, err := s.source.FetchByCode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	product := openbeautyfacts.MapToProduct(record)
	s.mergeIntoCache(ctx, []domain.Product{*product})

	return product, nil
}

// FetchRandom picks one term from the fixed vocabulary and searches the first
// page with pageSize=count
func (s *ProductService) FetchRandom(ctx context.Context, count int) ([]domain.Product, error) {
	if count <= 0 {
		count = 10
	}
	term := randomSearchTerms[rand.Intn(len(randomSearchTerms))]
	return s.Search(ctx, term, 1, count)
}

// CachedProducts returns the full cached product set
func (s *ProductService) CachedProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return products, nil
}

// ClearCache removes every cached product
func (s *ProductService) ClearCache(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

// mergeIntoCache upserts a batch into the store by barcode. Products with an
// empty barcode are appended as-is. Store failures are logged and swallowed:
// a caller must not lose a freshly-fetched result over a persistence error.
func (s *ProductService) mergeIntoCache(ctx context.Context, batch []domain.Product) {
	cached, err := s.store.LoadAll(ctx)
	if err != nil {
		log.Printf("[ProductService] cache load failed, skipping merge: %v", err)
		return
	}

	index := make(map[string]int, len(cached))
	for i := range cached {
		if cached[i].Barcode != "" {
			index[cached[i].Barcode] = i
		}
	}

	for _, product := range batch {
		if product.Barcode == "" {
			cached = append(cached, product)
			continue
		}
		if i, ok := index[product.Barcode]; ok {
			cached[i] = product
			continue
		}
		index[product.Barcode] = len(cached)
		cached = append(cached, product)
	}

	if err := s.store.SaveAll(ctx, cached); err != nil {
		log.Printf("[ProductService] cache save failed: %v", err)
	}
}
