package usecase

import "context"

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*AuthRes, error)
	Authenticate(ctx context.Context, req *LoginReq) (*AuthRes, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthRes, error)
	ResolveIdentity(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, req *LogoutReq) error
}

type CatalogUC interface {
	CreateCategory(ctx context.Context, identity *Identity, req *CreateCategoryReq) (*CategoryInfo, error)
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
	CreateProduct(ctx context.Context, identity *Identity, req *CreateProductReq) (*ProductInfo, error)
	ListProducts(ctx context.Context) ([]ProductInfo, error)
	GetProduct(ctx context.Context, productID int64) (*ProductInfo, error)
	UpdateProduct(ctx context.Context, identity *Identity, req *UpdateProductReq) (*ProductInfo, error)
	DeleteProduct(ctx context.Context, identity *Identity, productID int64) error
	UploadProductAsset(ctx context.Context, identity *Identity, req *UploadAssetReq) (*ProductInfo, error)
	ProductAssetURL(ctx context.Context, productID int64) (string, error)
}

type OrderUC interface {
	PlaceOrder(ctx context.Context, identity *Identity, req *PlaceOrderReq) (*OrderInfo, error)
	ListOrdersForBuyer(ctx context.Context, identity *Identity) ([]OrderInfo, error)
	GetOrder(ctx context.Context, identity *Identity, orderID int64) (*OrderInfo, error)
}
