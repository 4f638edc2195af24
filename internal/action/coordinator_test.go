package action

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mallworks/mallboard/internal/mall"
	"github.com/mallworks/mallboard/internal/session"
	"github.com/mallworks/mallboard/internal/state"
)

// ---------------------------------------------------------------------------
// In-memory API stub
// ---------------------------------------------------------------------------

type stubAPI struct {
	users    []mall.User
	shops    []mall.Shop
	products []mall.Product

	nextID int

	createShopCalls int
	listShopCalls   int
	lastListFilter  mall.ProductFilter

	writeErr error // if set, every write returns this error
	loginRaw json.RawMessage
	loginErr error
}

func (s *stubAPI) id(prefix string) string {
	s.nextID++
	return prefix + string(rune('0'+s.nextID))
}

func (s *stubAPI) ListUsers(context.Context) ([]mall.User, error) {
	return append([]mall.User(nil), s.users...), nil
}

func (s *stubAPI) CreateUser(_ context.Context, payload mall.CreateUser) (*mall.User, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	u := mall.User{ID: s.id("u"), Email: payload.Email, Name: payload.Name, Phone: payload.Phone, Role: payload.Role}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *stubAPI) UpdateUser(_ context.Context, id string, payload mall.UpdateUser) (*mall.User, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = payload.Name
			s.users[i].Phone = payload.Phone
			if payload.Role != "" {
				s.users[i].Role = payload.Role
			}
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, &mall.RequestError{Message: "failed to update user", Status: 404}
}

func (s *stubAPI) DeleteUser(_ context.Context, id string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return &mall.RequestError{Message: "failed to delete user", Status: 404}
}

func (s *stubAPI) ListShops(context.Context) ([]mall.Shop, error) {
	s.listShopCalls++
	return append([]mall.Shop(nil), s.shops...), nil
}

func (s *stubAPI) CreateShop(_ context.Context, payload mall.CreateShop) (*mall.Shop, error) {
	s.createShopCalls++
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	sh := mall.Shop{ID: s.id("s"), ShopName: payload.ShopName, Description: payload.Description,
		OwnerUserID: payload.OwnerUserID, ContactNumber: payload.ContactNumber, Address: payload.Address}
	s.shops = append(s.shops, sh)
	return &sh, nil
}

func (s *stubAPI) UpdateShop(_ context.Context, id string, payload mall.UpdateShop) (*mall.Shop, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	for i := range s.shops {
		if s.shops[i].ID == id {
			s.shops[i].ShopName = payload.ShopName
			s.shops[i].OwnerUserID = payload.OwnerUserID
			s.shops[i].Description = payload.Description
			s.shops[i].ContactNumber = payload.ContactNumber
			s.shops[i].Address = payload.Address
			sh := s.shops[i]
			return &sh, nil
		}
	}
	return nil, &mall.RequestError{Message: "failed to update shop", Status: 404}
}

func (s *stubAPI) DeleteShop(_ context.Context, id string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.shops {
		if s.shops[i].ID == id {
			s.shops = append(s.shops[:i], s.shops[i+1:]...)
			return nil
		}
	}
	return &mall.RequestError{Message: "failed to delete shop", Status: 404}
}

func (s *stubAPI) ListProducts(_ context.Context, filter mall.ProductFilter) ([]mall.Product, error) {
	s.lastListFilter = filter
	if filter.ShopID == "" {
		return append([]mall.Product(nil), s.products...), nil
	}
	var out []mall.Product
	for _, p := range s.products {
		if p.ShopID == filter.ShopID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubAPI) CreateProduct(_ context.Context, payload mall.CreateProduct) (*mall.Product, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	p := mall.Product{ID: s.id("p"), ProductName: payload.ProductName, Description: payload.Description,
		Price: payload.Price, Quantity: payload.Quantity, Category: payload.Category, ShopID: payload.ShopID}
	s.products = append(s.products, p)
	return &p, nil
}

func (s *stubAPI) UpdateProduct(_ context.Context, id string, payload mall.UpdateProduct) (*mall.Product, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].ProductName = payload.ProductName
			s.products[i].Price = payload.Price
			s.products[i].Quantity = payload.Quantity
			s.products[i].Category = payload.Category
			s.products[i].ShopID = payload.ShopID
			s.products[i].Description = payload.Description
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, &mall.RequestError{Message: "failed to update product", Status: 404}
}

func (s *stubAPI) DeleteProduct(_ context.Context, id string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return &mall.RequestError{Message: "failed to delete product", Status: 404}
}

func (s *stubAPI) Login(context.Context, mall.Credentials) (json.RawMessage, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginRaw, nil
}

var _ mall.API = (*stubAPI)(nil)

func newFixture(t *testing.T, api *stubAPI) (*Coordinator, *state.Stores) {
	t.Helper()
	stores := state.NewStores(api)
	coord := NewCoordinator(api, stores, filepath.Join(t.TempDir(), "session.json"))
	return coord, stores
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCoordinator_CreateShopThenRefreshShowsIt(t *testing.T) {
	api := &stubAPI{users: []mall.User{{ID: "u1", Name: "Ann", Email: "ann@x.com"}}}
	coord, stores := newFixture(t, api)

	notice := coord.CreateShop(context.Background(), mall.CreateShop{ShopName: "Acme", OwnerUserID: "u1"})
	if notice.Kind != NoticeSuccess || notice.Message != "Shop created" {
		t.Fatalf("notice = %#v, want success Shop created", notice)
	}

	shops := stores.Shops.Items()
	if len(shops) != 1 {
		t.Fatalf("shops after create = %#v, want 1 entry", shops)
	}
	if shops[0].ShopName != "Acme" || shops[0].OwnerUserID != "u1" || shops[0].ID == "" {
		t.Fatalf("shop = %#v, want payload fields plus assigned id", shops[0])
	}
	if coord.Phase() != PhaseIdle {
		t.Fatalf("Phase = %v, want idle after the attempt settles", coord.Phase())
	}
}

func TestCoordinator_ValidationBlocksNetwork(t *testing.T) {
	api := &stubAPI{}
	coord, stores := newFixture(t, api)

	// 5-digit contact number: locally rejected, the client is never invoked.
	notice := coord.CreateShop(context.Background(), mall.CreateShop{
		ShopName:      "Acme",
		OwnerUserID:   "u1",
		ContactNumber: "12345",
	})
	if notice.Kind != NoticeError {
		t.Fatalf("notice = %#v, want error", notice)
	}
	if !strings.Contains(notice.Message, "contactnumber must be exactly 10 digits") {
		t.Fatalf("notice message = %q, want the validation detail", notice.Message)
	}
	if api.createShopCalls != 0 {
		t.Fatalf("createShopCalls = %d, want 0 (no network call on validation failure)", api.createShopCalls)
	}
	if api.listShopCalls != 0 {
		t.Fatalf("listShopCalls = %d, want 0 (no refresh on validation failure)", api.listShopCalls)
	}
	if got := stores.Shops.Items(); len(got) != 0 {
		t.Fatalf("shops = %#v, want store untouched", got)
	}
}

func TestCoordinator_WriteFailureLeavesStoreUnchanged(t *testing.T) {
	api := &stubAPI{users: []mall.User{{ID: "u1", Name: "Ann", Email: "ann@x.com"}}}
	coord, stores := newFixture(t, api)
	if err := stores.Users.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh returned error: %v", err)
	}

	api.writeErr = &mall.RequestError{Message: "failed to create user", Status: 500}
	notice := coord.CreateUser(context.Background(), mall.CreateUser{Email: "bo@x.com", Name: "Bo", Password: "pw"})
	if notice.Kind != NoticeError || notice.Message != "failed to create user" {
		t.Fatalf("notice = %#v, want the client's fixed message", notice)
	}
	if got := stores.Users.Items(); len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("users = %#v, want pre-mutation snapshot (nothing to roll back)", got)
	}
}

func TestCoordinator_DeleteRefreshesOnlyMutatedStore(t *testing.T) {
	api := &stubAPI{
		users: []mall.User{{ID: "u1", Name: "Ann", Email: "ann@x.com"}},
		shops: []mall.Shop{{ID: "s1", ShopName: "Acme", OwnerUserID: "u1"}},
	}
	coord, stores := newFixture(t, api)
	_ = stores.Shops.Refresh(context.Background())
	listCallsBefore := api.listShopCalls

	notice := coord.DeleteShop(context.Background(), "s1")
	if notice.Kind != NoticeSuccess || notice.Message != "Shop deleted" {
		t.Fatalf("notice = %#v, want success Shop deleted", notice)
	}
	if api.listShopCalls != listCallsBefore+1 {
		t.Fatalf("listShopCalls = %d, want exactly one post-delete refresh", api.listShopCalls)
	}
	if got := stores.Shops.Items(); len(got) != 0 {
		t.Fatalf("shops = %#v, want empty after delete+refresh", got)
	}
	// Users store untouched: it was never refreshed, so it is still unloaded.
	if stores.Users.Loaded() {
		t.Fatal("users store loaded = true, want untouched by a shop mutation")
	}
}

func TestCoordinator_UpdateProductRoundTrip(t *testing.T) {
	api := &stubAPI{products: []mall.Product{{ID: "p1", ProductName: "Mug", Price: 5, Quantity: 2, ShopID: "s1"}}}
	coord, stores := newFixture(t, api)

	notice := coord.UpdateProduct(context.Background(), "p1", mall.UpdateProduct{
		ProductName: "Big Mug", Price: 7.5, Quantity: 4, ShopID: "s1",
	})
	if notice.Kind != NoticeSuccess {
		t.Fatalf("notice = %#v, want success", notice)
	}
	got := stores.Products.Items()
	if len(got) != 1 || got[0].ProductName != "Big Mug" || got[0].Price != 7.5 {
		t.Fatalf("products = %#v, want server truth after refresh", got)
	}
}

func TestCoordinator_ProductRefreshHonorsShopFilter(t *testing.T) {
	api := &stubAPI{products: []mall.Product{
		{ID: "p1", ProductName: "Mug", ShopID: "s1"},
		{ID: "p2", ProductName: "Hat", ShopID: "s2"},
	}}
	_, stores := newFixture(t, api)

	stores.SetProductShopFilter("s2")
	if err := stores.Products.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if api.lastListFilter.ShopID != "s2" {
		t.Fatalf("list filter = %#v, want shopId s2 on the wire", api.lastListFilter)
	}
	if got := stores.Products.Items(); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("products = %#v, want only shop s2's products", got)
	}

	stores.SetProductShopFilter("")
	_ = stores.Products.Refresh(context.Background())
	if got := stores.Products.Items(); len(got) != 2 {
		t.Fatalf("products = %#v, want the filter cleared", got)
	}
}

func TestCoordinator_LoginPersistsSessionVerbatim(t *testing.T) {
	raw := json.RawMessage(`{"id":"u1","name":"Ann","token":"opaque"}`)
	api := &stubAPI{loginRaw: raw}
	stores := state.NewStores(api)
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	coord := NewCoordinator(api, stores, sessionPath)

	notice := coord.Login(context.Background(), mall.Credentials{Email: "ann@x.com", Password: "pw"})
	if notice.Kind != NoticeSuccess {
		t.Fatalf("notice = %#v, want success", notice)
	}
	stored, ok := session.Load(sessionPath)
	if !ok || string(stored) != string(raw) {
		t.Fatalf("session = %q ok=%v, want stored verbatim", stored, ok)
	}

	if out := coord.Logout(); out.Kind != NoticeSuccess {
		t.Fatalf("logout notice = %#v, want success", out)
	}
	if _, ok := session.Load(sessionPath); ok {
		t.Fatal("session still present after logout")
	}
}

func TestCoordinator_LoginFailures(t *testing.T) {
	api := &stubAPI{loginErr: &mall.RequestError{Message: "invalid credentials", Status: 401}}
	coord, _ := newFixture(t, api)

	// Validation failure first: no email.
	notice := coord.Login(context.Background(), mall.Credentials{Password: "pw"})
	if notice.Kind != NoticeError || !strings.Contains(notice.Message, "email is required") {
		t.Fatalf("notice = %#v, want validation error", notice)
	}

	notice = coord.Login(context.Background(), mall.Credentials{Email: "ann@x.com", Password: "bad"})
	if notice.Kind != NoticeError || notice.Message != "invalid credentials" {
		t.Fatalf("notice = %#v, want invalid credentials", notice)
	}
}

func TestCoordinator_DeleteErrorSurfacesFixedMessage(t *testing.T) {
	api := &stubAPI{}
	coord, _ := newFixture(t, api)

	notice := coord.DeleteProduct(context.Background(), "missing")
	if notice.Kind != NoticeError || notice.Message != "failed to delete product" {
		t.Fatalf("notice = %#v, want the fixed delete message", notice)
	}
}
