package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) register(t *testing.T, username string, role domain.Role) *Identity {
	t.Helper()

	res, err := env.auth.Register(context.Background(), &RegisterReq{
		Username: username,
		Email:    username + "@example.com",
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Role:     string(role),
		Password: "password123",
	})
	require.NoError(t, err)

	identity := res.Identity
	return &identity
}

func (env *testEnv) category(t *testing.T, by *Identity, name string) *CategoryInfo {
	t.Helper()

	c, err := env.catalog.CreateCategory(context.Background(), by, &CreateCategoryReq{Name: name})
	require.NoError(t, err)
	return c
}

func (env *testEnv) product(t *testing.T, seller *Identity, categoryID int64, title, price string) *ProductInfo {
	t.Helper()

	p, err := env.catalog.CreateProduct(context.Background(), seller, &CreateProductReq{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	valid := RegisterReq{Username: "alice", Email: "alice@example.com", Name: "Alice", Role: "buyer", Password: "password123"}

	tests := []struct {
		name   string
		mutate func(r *RegisterReq)
		want   error
	}{
		{"empty username", func(r *RegisterReq) { r.Username = "  " }, e.ErrUsernameRequired},
		{"empty name", func(r *RegisterReq) { r.Name = "" }, e.ErrNameRequired},
		{"bad email", func(r *RegisterReq) { r.Email = "alice.example.com" }, e.ErrInvalidEmail},
		{"email without domain dot", func(r *RegisterReq) { r.Email = "alice@localhost" }, e.ErrInvalidEmail},
		{"short password", func(r *RegisterReq) { r.Password = "short" }, e.ErrPasswordTooShort},
		{"password over 72 bytes", func(r *RegisterReq) { r.Password = strings.Repeat("a", 73) }, e.ErrPasswordTooLong},
		{"multibyte password over 72 bytes", func(r *RegisterReq) { r.Password = strings.Repeat("п", 37) }, e.ErrPasswordTooLong},
		{"unknown role", func(r *RegisterReq) { r.Role = "admin" }, e.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			_, err := env.auth.Register(ctx, &req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, e.ErrValidation)
		})
	}
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.register(t, "alice", domain.RoleBuyer)

	_, err := env.auth.Register(ctx, &RegisterReq{
		Username: "alice", Email: "other@example.com", Name: "A", Role: "buyer", Password: "password123",
	})
	assert.ErrorIs(t, err, e.ErrUsernameTaken)
	assert.ErrorIs(t, err, e.ErrConflict)

	_, err = env.auth.Register(ctx, &RegisterReq{
		Username: "alice2", Email: "ALICE@example.com", Name: "A", Role: "seller", Password: "password123",
	})
	assert.ErrorIs(t, err, e.ErrEmailTaken)
}

func TestRegister_NeverStoresPlainPassword(t *testing.T) {
	env := newTestEnv()
	identity := env.register(t, "alice", domain.RoleSeller)

	stored := env.store.users[identity.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Equal(t, domain.RoleSeller, identity.Role)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", domain.RoleBuyer)

	res, err := env.auth.Authenticate(ctx, &LoginReq{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "alice", res.Identity.Username)

	_, wrongPassword := env.auth.Authenticate(ctx, &LoginReq{Username: "alice", Password: "nope-nope"})
	_, unknownUser := env.auth.Authenticate(ctx, &LoginReq{Username: "bob", Password: "password123"})

	assert.ErrorIs(t, wrongPassword, e.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, e.ErrInvalidCredentials)

	pubWrong, _ := e.Public(wrongPassword)
	pubUnknown, _ := e.Public(unknownUser)
	assert.Equal(t, pubWrong.Msg, pubUnknown.Msg)
}

func TestResolveIdentityAndLogout(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", domain.RoleBuyer)

	res, err := env.auth.Authenticate(ctx, &LoginReq{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	identity, err := env.auth.ResolveIdentity(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	_, err = env.auth.ResolveIdentity(ctx, "garbage")
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	_, err = env.auth.ResolveIdentity(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	require.NoError(t, env.auth.Logout(ctx, &LogoutReq{AccessToken: res.AccessToken}))

	_, err = env.auth.ResolveIdentity(ctx, res.AccessToken)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestRefresh_RotatesPair(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", domain.RoleBuyer)

	res, err := env.auth.Authenticate(ctx, &LoginReq{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.RefreshToken)

	refreshed, err := env.auth.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, res.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, "alice", refreshed.Identity.Username)

	identity, err := env.auth.ResolveIdentity(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	_, err = env.auth.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	_, err = env.auth.Refresh(ctx, refreshed.AccessToken)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	_, err = env.auth.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", domain.RoleBuyer)
	env.register(t, "bob", domain.RoleBuyer)

	alice, err := env.auth.Authenticate(ctx, &LoginReq{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	bob, err := env.auth.Authenticate(ctx, &LoginReq{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	err = env.auth.Logout(ctx, &LogoutReq{AccessToken: alice.AccessToken, RefreshToken: bob.RefreshToken})
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	err = env.auth.Logout(ctx, &LogoutReq{AccessToken: alice.RefreshToken})
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	require.NoError(t, env.auth.Logout(ctx, &LogoutReq{AccessToken: alice.AccessToken, RefreshToken: alice.RefreshToken}))

	_, err = env.auth.Refresh(ctx, alice.RefreshToken)
	assert.ErrorIs(t, err, e.ErrInvalidToken)

	_, err = env.auth.Refresh(ctx, bob.RefreshToken)
	assert.NoError(t, err)
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	buyer := env.register(t, "bob", domain.RoleBuyer)

	c, err := env.catalog.CreateCategory(ctx, buyer, &CreateCategoryReq{Name: " Books ", Description: "paper"})
	require.NoError(t, err)
	assert.Equal(t, "Books", c.Name)

	_, err = env.catalog.CreateCategory(ctx, buyer, &CreateCategoryReq{Name: "Books"})
	assert.ErrorIs(t, err, e.ErrConflict)

	_, err = env.catalog.CreateCategory(ctx, buyer, &CreateCategoryReq{Name: ""})
	assert.ErrorIs(t, err, e.ErrCategoryNameRequired)

	_, err = env.catalog.CreateCategory(ctx, nil, &CreateCategoryReq{Name: "Music"})
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	list, err := env.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateProduct_BuyerForbiddenRegardlessOfPayload(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	buyer := env.register(t, "bob", domain.RoleBuyer)

	payloads := []*CreateProductReq{
		{Title: "Ebook", Price: decimal.RequireFromString("10.00"), CategoryID: 1},
		{Title: "", Price: decimal.RequireFromString("-1"), CategoryID: 0},
		{Title: "x", Price: decimal.RequireFromString("1.999"), CategoryID: 999},
	}

	for i, req := range payloads {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := env.catalog.CreateProduct(ctx, buyer, req)
			assert.ErrorIs(t, err, e.ErrForbidden)
			assert.ErrorIs(t, err, e.ErrOnlySellers)
		})
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	cat := env.category(t, seller, "Software")

	tests := []struct {
		name string
		req  CreateProductReq
		want error
	}{
		{"empty title", CreateProductReq{Title: " ", Price: decimal.RequireFromString("1"), CategoryID: cat.ID}, e.ErrTitleRequired},
		{"zero price", CreateProductReq{Title: "t", Price: decimal.Zero, CategoryID: cat.ID}, e.ErrPriceMustBePositive},
		{"three decimals", CreateProductReq{Title: "t", Price: decimal.RequireFromString("1.001"), CategoryID: cat.ID}, e.ErrPricePrecision},
		{"too large", CreateProductReq{Title: "t", Price: decimal.RequireFromString("100000000"), CategoryID: cat.ID}, e.ErrPriceTooLarge},
		{"huge exponent", CreateProductReq{Title: "t", Price: decimal.RequireFromString("1e50000000"), CategoryID: cat.ID}, e.ErrPriceTooLarge},
		{"tiny exponent", CreateProductReq{Title: "t", Price: decimal.RequireFromString("1e-50000000"), CategoryID: cat.ID}, e.ErrPricePrecision},
		{"missing category", CreateProductReq{Title: "t", Price: decimal.RequireFromString("1"), CategoryID: 4242}, e.ErrCategoryNotExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.CreateProduct(ctx, seller, &tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, e.ErrValidation)
		})
	}
}

func TestCreateProduct_RoundTripThroughList(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	cat := env.category(t, seller, "Software")

	created := env.product(t, seller, cat.ID, "Editor", "49.90")

	list, err := env.catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Editor", got.Title)
	assert.Equal(t, int64(4990), got.Price)
	assert.Equal(t, seller.ID, got.Owner.ID)
	assert.Equal(t, seller.Username, got.Owner.Username)
	assert.Equal(t, seller.Name, got.Owner.Name)
	require.NotNil(t, got.CategoryName)
	assert.Equal(t, "Software", *got.CategoryName)
}

func TestListProducts_SkipsMissingOwnerAndToleratesMissingCategory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	cat := env.category(t, seller, "Software")

	orphan := env.product(t, seller, cat.ID, "Orphan", "1.00")
	kept := env.product(t, seller, cat.ID, "Kept", "2.00")

	env.store.products[orphan.ID].OwnerID = 9999
	env.store.products[kept.ID].CategoryID = nil

	list, err := env.catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)
	assert.Nil(t, list[0].CategoryName)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := env.register(t, "sam", domain.RoleSeller)
	other := env.register(t, "sue", domain.RoleSeller)
	cat := env.category(t, owner, "Software")
	p := env.product(t, owner, cat.ID, "Editor", "10.00")

	title := "Editor Pro"
	price := decimal.RequireFromString("12.50")

	_, err := env.catalog.UpdateProduct(ctx, other, &UpdateProductReq{ProductID: p.ID, Title: &title})
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.catalog.UpdateProduct(ctx, owner, &UpdateProductReq{ProductID: p.ID + 100, Title: &title})
	assert.ErrorIs(t, err, e.ErrNotFound)

	bad := decimal.RequireFromString("0")
	_, err = env.catalog.UpdateProduct(ctx, owner, &UpdateProductReq{ProductID: p.ID, Price: &bad})
	assert.ErrorIs(t, err, e.ErrPriceMustBePositive)

	missingCat := int64(777)
	_, err = env.catalog.UpdateProduct(ctx, owner, &UpdateProductReq{ProductID: p.ID, CategoryID: &missingCat})
	assert.ErrorIs(t, err, e.ErrCategoryNotExists)

	updated, err := env.catalog.UpdateProduct(ctx, owner, &UpdateProductReq{ProductID: p.ID, Title: &title, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Editor Pro", updated.Title)
	assert.Equal(t, int64(1250), updated.Price)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := env.register(t, "sam", domain.RoleSeller)
	other := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, owner, "Software")
	p := env.product(t, owner, cat.ID, "Editor", "10.00")

	_, err := env.catalog.UploadProductAsset(ctx, owner, &UploadAssetReq{
		ProductID: p.ID, FileName: "editor.zip", Size: 3, Body: strings.NewReader("zip"),
	})
	require.NoError(t, err)

	err = env.catalog.DeleteProduct(ctx, other, p.ID)
	assert.ErrorIs(t, err, e.ErrNotOwner)

	require.NoError(t, env.catalog.DeleteProduct(ctx, owner, p.ID))
	assert.Equal(t, env.assets.uploaded, env.assets.cleanedUp)

	_, err = env.catalog.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestUploadProductAsset_ReplacesPrevious(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := env.register(t, "sam", domain.RoleSeller)
	cat := env.category(t, owner, "Software")
	p := env.product(t, owner, cat.ID, "Editor", "10.00")

	_, err := env.catalog.ProductAssetURL(ctx, p.ID)
	assert.ErrorIs(t, err, e.ErrAssetNotFound)

	_, err = env.catalog.UploadProductAsset(ctx, owner, &UploadAssetReq{ProductID: p.ID})
	assert.ErrorIs(t, err, e.ErrNoFile)

	first, err := env.catalog.UploadProductAsset(ctx, owner, &UploadAssetReq{
		ProductID: p.ID, FileName: "v1.zip", Size: 2, Body: strings.NewReader("v1"),
	})
	require.NoError(t, err)
	assert.True(t, first.HasAsset)

	_, err = env.catalog.UploadProductAsset(ctx, owner, &UploadAssetReq{
		ProductID: p.ID, FileName: "v2.zip", Size: 2, Body: strings.NewReader("v2"),
	})
	require.NoError(t, err)

	require.Len(t, env.assets.uploaded, 2)
	assert.Equal(t, []string{env.assets.uploaded[0]}, env.assets.cleanedUp)

	url, err := env.catalog.ProductAssetURL(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://assets.local/"+env.assets.uploaded[1], url)
}

func TestPlaceOrder_TotalAndStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	buyer := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	order, err := env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "30.00", domain.FormatCents(order.TotalPrice))
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "Editor", order.ProductTitle)
	assert.Equal(t, buyer.ID, order.BuyerID)

	require.Len(t, env.store.outbox, 1)
	assert.Equal(t, OrderPlaced, env.store.outbox[0].EventType)
	assert.Equal(t, order.ID, env.store.outbox[0].AggregateID)
}

func TestPlaceOrder_Rules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	buyer := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	_, err := env.orders.PlaceOrder(ctx, seller, &PlaceOrderReq{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrOnlyBuyers)

	_, err = env.orders.PlaceOrder(ctx, nil, &PlaceOrderReq{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrUnauthorized)

	_, err = env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID + 50, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, e.ErrInvalidQuantity)

	assert.Empty(t, env.store.orders)
	assert.Empty(t, env.store.outbox)
}

func TestPlaceOrder_OwnProductRejectedEvenForBuyerRole(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	// роль сменилась после публикации товара
	env.store.users[seller.ID].Role = domain.RoleBuyer
	asBuyer := *seller
	asBuyer.Role = domain.RoleBuyer

	_, err := env.orders.PlaceOrder(ctx, &asBuyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, e.ErrOwnProductOrder)
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestPlaceOrder_OutboxFailureRollsBackOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	buyer := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	env.outbox.err = errors.New("outbox unavailable")

	_, err := env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 1})
	require.Error(t, err)
	assert.Empty(t, env.store.orders)
}

func TestPlaceOrder_PriceCapturedAtCreation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	buyer := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	order, err := env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("99.99")
	_, err = env.catalog.UpdateProduct(ctx, seller, &UpdateProductReq{ProductID: p.ID, Price: &newPrice})
	require.NoError(t, err)

	got, err := env.orders.GetOrder(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.TotalPrice)
}

func TestOrdersAreScopedToBuyer(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := env.register(t, "sam", domain.RoleSeller)
	alice := env.register(t, "alice", domain.RoleBuyer)
	bob := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Software")
	p := env.product(t, seller, cat.ID, "Editor", "10.00")

	aliceOrder, err := env.orders.PlaceOrder(ctx, alice, &PlaceOrderReq{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = env.orders.PlaceOrder(ctx, bob, &PlaceOrderReq{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	list, err := env.orders.ListOrdersForBuyer(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	for _, o := range list {
		assert.Equal(t, alice.ID, o.BuyerID)
	}

	_, err = env.orders.GetOrder(ctx, bob, aliceOrder.ID)
	assert.ErrorIs(t, err, e.ErrOrderNotFound)

	_, missing := env.orders.GetOrder(ctx, bob, aliceOrder.ID+1000)
	pubForeign, _ := e.Public(err)
	pubMissing, _ := e.Public(missing)
	assert.Equal(t, pubForeign, pubMissing)

	sellerOrders, err := env.orders.ListOrdersForBuyer(ctx, seller)
	require.NoError(t, err)
	assert.Empty(t, sellerOrders)
}

func TestEndToEnd_OrderPlacementScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	seller := env.register(t, "sam", domain.RoleSeller)
	buyer := env.register(t, "bob", domain.RoleBuyer)
	cat := env.category(t, seller, "Ebooks")
	p := env.product(t, seller, cat.ID, "Go in Practice", "19.99")

	order, err := env.orders.PlaceOrder(ctx, buyer, &PlaceOrderReq{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "39.98", domain.FormatCents(order.TotalPrice))
	assert.Equal(t, domain.OrderPending, order.Status)

	list, err := env.orders.ListOrdersForBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go in Practice", list[0].ProductTitle)
	assert.Equal(t, "39.98", domain.FormatCents(list[0].TotalPrice))
}
