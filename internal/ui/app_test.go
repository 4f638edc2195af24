package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/mall"
	"github.com/mallworks/mallboard/internal/state"
)

func testStores(users []mall.User, shops []mall.Shop, products []mall.Product) *state.Stores {
	return &state.Stores{
		Users: state.NewListStore(func(context.Context) ([]mall.User, error) {
			return users, nil
		}, func(u mall.User) []string { return []string{u.Name} }),
		Shops: state.NewListStore(func(context.Context) ([]mall.Shop, error) {
			return shops, nil
		}, func(s mall.Shop) []string { return []string{s.ShopName} }),
		Products: state.NewListStore(func(context.Context) ([]mall.Product, error) {
			return products, nil
		}, func(p mall.Product) []string { return []string{p.ProductName, p.Category} }),
	}
}

func testModel(t *testing.T, stores *state.Stores) Model {
	t.Helper()
	m := New(Options{
		Stores:    stores,
		LoggedIn:  true,
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
	m.ready = true
	m.width = 120
	m.height = 40
	return m
}

func TestShopsTable_OwnerLabels(t *testing.T) {
	stores := testStores(
		[]mall.User{{ID: "u1", Name: "Ann", Email: "ann@example.com"}},
		[]mall.Shop{
			{ID: "s1", ShopName: "Books", OwnerUserID: "u1"},
			{ID: "s2", ShopName: "Tools", OwnerUserID: "ghost"},
		},
		nil,
	)
	if err := stores.RefreshAll(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.currentView = ViewShops
	out := m.renderShopsTable()

	if !strings.Contains(out, "Ann (ann@example.com)") {
		t.Errorf("resolved owner label missing:\n%s", out)
	}
	if !strings.Contains(out, "Unknown User (ghost)") {
		t.Errorf("unknown owner fallback missing:\n%s", out)
	}
}

func TestShopsTable_OwnerLoadingBeforeUsersLoad(t *testing.T) {
	stores := testStores(nil, nil, nil)
	// Only the shops store has loaded; users have produced no entries yet.
	shops := []mall.Shop{{ID: "s1", ShopName: "Books", OwnerUserID: "u1"}}
	stores.Shops = state.NewListStore(func(context.Context) ([]mall.Shop, error) {
		return shops, nil
	}, nil)
	if err := stores.Shops.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.currentView = ViewShops
	out := m.renderShopsTable()

	if !strings.Contains(out, state.LoadingLabel) {
		t.Errorf("expected %q placeholder before users load:\n%s", state.LoadingLabel, out)
	}
}

func TestFilterNarrowsVisibleRows(t *testing.T) {
	stores := testStores([]mall.User{
		{ID: "u1", Name: "Ann", Email: "ann@example.com"},
		{ID: "u2", Name: "Bob", Email: "bob@example.com"},
	}, nil, nil)
	if err := stores.RefreshAll(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.filters[ViewUsers] = "ann"

	users := m.visibleUsers()
	if len(users) != 1 || users[0].Name != "Ann" {
		t.Fatalf("visibleUsers = %+v, want only Ann", users)
	}

	// Clearing the filter restores the full snapshot.
	m.filters[ViewUsers] = ""
	if got := len(m.visibleUsers()); got != 2 {
		t.Errorf("unfiltered count = %d, want 2", got)
	}
}

func TestToastReplacementKeepsSuccessor(t *testing.T) {
	m := testModel(t, testStores(nil, nil, nil))

	model, _ := m.showToast(action.Notice{Kind: action.NoticeSuccess, Message: "User created"})
	m = model.(Model)
	firstID := m.toast.id

	model, _ = m.showToast(action.Notice{Kind: action.NoticeSuccess, Message: "Shop created"})
	m = model.(Model)
	if m.toast.message != "Shop created" {
		t.Fatalf("toast = %q, want replacement", m.toast.message)
	}

	// The first toast's expiry fires after replacement and must not clear
	// the successor.
	model, _ = m.Update(toastExpiredMsg{id: firstID})
	m = model.(Model)
	if m.toast == nil || m.toast.message != "Shop created" {
		t.Fatalf("stale expiry cleared the replacement toast")
	}

	model, _ = m.Update(toastExpiredMsg{id: m.toast.id})
	m = model.(Model)
	if m.toast != nil {
		t.Fatalf("matching expiry should clear the toast")
	}
}

func TestStaleRefreshResponseIgnored(t *testing.T) {
	m := testModel(t, testStores(nil, nil, nil))
	m.gen = 2
	m.refreshing = true

	model, _ := m.Update(refreshedMsg{view: ViewUsers, gen: 1})
	m = model.(Model)
	if !m.refreshing {
		t.Fatalf("superseded refresh response cleared the in-flight state")
	}

	model, _ = m.Update(refreshedMsg{view: ViewUsers, gen: 2})
	m = model.(Model)
	if m.refreshing {
		t.Fatalf("current refresh response should clear the in-flight state")
	}
}

func TestCycleShopFilter(t *testing.T) {
	stores := testStores(nil, []mall.Shop{
		{ID: "s1", ShopName: "Books"},
		{ID: "s2", ShopName: "Tools"},
	}, nil)
	if err := stores.Shops.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.currentView = ViewProducts

	m.cycleShopFilter()
	if got := stores.ProductFilter().ShopID; got != "s1" {
		t.Errorf("first cycle filter = %q, want s1", got)
	}
	m.cycleShopFilter()
	if got := stores.ProductFilter().ShopID; got != "s2" {
		t.Errorf("second cycle filter = %q, want s2", got)
	}
	m.cycleShopFilter()
	if got := stores.ProductFilter().ShopID; got != "" {
		t.Errorf("cycle should wrap back to all shops, got %q", got)
	}
}

func TestProductEditFormPrefill(t *testing.T) {
	stores := testStores(nil, nil, []mall.Product{
		{ID: "p1", ProductName: "Lamp", Price: 19.9, Quantity: 4, Category: "home", ShopID: "s1"},
	})
	if err := stores.Products.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.currentView = ViewProducts

	f := m.newEditForm()
	if f == nil {
		t.Fatal("newEditForm returned nil with a selected row")
	}
	if f.editID != "p1" {
		t.Errorf("editID = %q, want p1", f.editID)
	}
	if got := f.value(2); got != "19.90" {
		t.Errorf("price prefill = %q, want 19.90", got)
	}
	if got := f.value(3); got != "4" {
		t.Errorf("quantity prefill = %q, want 4", got)
	}
	if got := f.value(5); got != "s1" {
		t.Errorf("shop id prefill = %q, want s1", got)
	}
}

func TestFormParseNumbers(t *testing.T) {
	tests := []struct {
		price     string
		qty       string
		wantPrice float64
		wantQty   int
		wantErr   string
	}{
		{"19.90", "4", 19.9, 4, ""},
		{"", "", 0, 0, ""},
		{"abc", "4", 0, 0, "price must be a number"},
		{"1.5", "4.5", 0, 0, "quantity must be a whole number"},
	}

	for _, tt := range tests {
		f := newForm(formProduct, "t", "", []formField{
			newField("Product name", "", false),
			newField("Description", "", false),
			newField("Price", tt.price, false),
			newField("Quantity", tt.qty, false),
			newField("Category", "", false),
			newField("Shop id", "", false),
		})
		price, qty, err := f.parseNumbers(2, 3)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("parseNumbers(%q, %q) err = %v, want %q", tt.price, tt.qty, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseNumbers(%q, %q) unexpected error: %v", tt.price, tt.qty, err)
			continue
		}
		if price != tt.wantPrice || qty != tt.wantQty {
			t.Errorf("parseNumbers(%q, %q) = %v, %v", tt.price, tt.qty, price, qty)
		}
	}
}

func TestShopStats(t *testing.T) {
	stores := testStores(nil, []mall.Shop{
		{ID: "s1", ShopName: "Books", ContactNumber: "0123456789", Address: "1 Main St"},
		{ID: "s2", ShopName: "Tools", Address: "2 Side St"},
		{ID: "s3", ShopName: "Toys"},
	}, nil)
	if err := stores.Shops.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	out := m.renderShopStats()

	want := "3 shops · 1 with contact · 2 with address"
	if !strings.Contains(out, want) {
		t.Errorf("stats = %q, want %q", out, want)
	}
}

func TestProductStats(t *testing.T) {
	stores := testStores(nil, nil, []mall.Product{
		{ID: "p1", ProductName: "Lamp", Category: "home"},
		{ID: "p2", ProductName: "Mug", Category: "home"},
		{ID: "p3", ProductName: "Yo-yo", Category: "toys"},
		{ID: "p4", ProductName: "Widget"},
	})
	if err := stores.Products.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	m := testModel(t, stores)
	m.currentView = ViewProducts

	out := m.renderProductStats()
	want := "4 of 4 products · home 2 · toys 1 · uncategorized 1"
	if !strings.Contains(out, want) {
		t.Errorf("stats = %q, want %q", out, want)
	}

	// The visible count follows the filter; category counts stay on the
	// full snapshot.
	m.filters[ViewProducts] = "lamp"
	out = m.renderProductStats()
	if !strings.Contains(out, "1 of 4 products") {
		t.Errorf("filtered stats = %q, want %q", out, "1 of 4 products")
	}
}

func TestEmptyMessages(t *testing.T) {
	stores := testStores(nil, nil, nil)
	m := testModel(t, stores)

	if got := m.emptyMessage("users"); got != "Loading users..." {
		t.Errorf("unloaded store message = %q", got)
	}

	if err := stores.Users.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := m.emptyMessage("users"); got != "No users yet." {
		t.Errorf("loaded empty message = %q", got)
	}

	m.filters[ViewUsers] = "zzz"
	if got := m.emptyMessage("users"); got != "No users match the filter." {
		t.Errorf("filtered empty message = %q", got)
	}
}
