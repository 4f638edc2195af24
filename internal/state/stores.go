package state

import (
	"context"
	"sync"

	"github.com/mallworks/mallboard/internal/mall"
)

// Stores bundles the three list stores the console displays. Each store
// fetches through the shared API client; the products store reads the
// current shop filter at fetch time so a refresh always honors the latest
// selection.
type Stores struct {
	Users    *ListStore[mall.User]
	Shops    *ListStore[mall.Shop]
	Products *ListStore[mall.Product]

	mu            sync.RWMutex
	productFilter mall.ProductFilter
}

// NewStores builds the stores over the given API.
func NewStores(api mall.API) *Stores {
	s := &Stores{}
	s.Users = NewListStore(api.ListUsers, func(u mall.User) []string {
		return []string{u.Name}
	})
	s.Shops = NewListStore(api.ListShops, func(sh mall.Shop) []string {
		return []string{sh.ShopName}
	})
	s.Products = NewListStore(func(ctx context.Context) ([]mall.Product, error) {
		return api.ListProducts(ctx, s.ProductFilter())
	}, func(p mall.Product) []string {
		return []string{p.ProductName, p.Category}
	})
	return s
}

// ProductFilter returns the filter applied to product refreshes.
func (s *Stores) ProductFilter() mall.ProductFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productFilter
}

// SetProductShopFilter narrows product refreshes to one shop; empty clears
// the filter. Takes effect on the next refresh.
func (s *Stores) SetProductShopFilter(shopID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productFilter = mall.ProductFilter{ShopID: shopID}
}

// RefreshAll refreshes every store and returns the first error, refreshing
// the rest regardless.
func (s *Stores) RefreshAll(ctx context.Context) error {
	var first error
	for _, refresh := range []func(context.Context) error{
		s.Users.Refresh,
		s.Shops.Refresh,
		s.Products.Refresh,
	} {
		if err := refresh(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
