package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

// CatalogUseCase реализует управление категориями и товарами.
type CatalogUseCase struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
	userRepo     UserRepository
	assetsInfra  AssetsInfra
	logger       logger.Logger
}

func NewCatalogUC(
	categoryRepo CategoryRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	assetsInfra AssetsInfra,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		assetsInfra:  assetsInfra,
		logger:       logger,
	}
}

// CreateCategory создаёт категорию. Доступно любому аутентифицированному пользователю,
// повтор имени отклоняется хранилищем.
func (c *CatalogUseCase) CreateCategory(ctx context.Context, identity *Identity, req *CreateCategoryReq) (*CategoryInfo, error) {
	const op = "CatalogUseCase.CreateCategory"

	if identity == nil {
		return nil, e.Wrap(op, e.ErrMissingToken)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(name, strings.TrimSpace(req.Description)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("category created: id=%d name=%q by user_id=%d", category.ID, category.Name, identity.ID)

	info := NewCategoryInfo(category)
	return &info, nil
}

func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		result = append(result, NewCategoryInfo(&categories[i]))
	}

	return result, nil
}

// CreateProduct выставляет товар от имени продавца.
// Роль проверяется до валидации данных: покупатель получает ForbiddenError при любом теле запроса.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, identity *Identity, req *CreateProductReq) (*ProductInfo, error) {
	const op = "CatalogUseCase.CreateProduct"

	if err := RequireRole(identity, domain.RoleSeller); err != nil {
		return nil, e.Wrap(op, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, e.Wrap(op, e.ErrTitleRequired)
	}

	price, err := domain.PriceToCents(req.Price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	category, err := c.getExistingCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := c.productRepo.Create(ctx, domain.NewProduct(title, req.Description, price, category.ID, identity.ID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("product created: id=%d owner_id=%d price=%s", product.ID, product.OwnerID, domain.FormatCents(product.Price))

	info := NewProductInfo(product, identityAsUser(identity), category)
	return &info, nil
}

// ListProducts возвращает все товары. Категория и владелец подставляются для каждой записи отдельно:
// товар без категории отдаётся с пустым названием категории, товар без владельца пропускается.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]ProductInfo, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(products) == 0 {
		return []ProductInfo{}, nil
	}

	ownerIDs := make([]int64, 0, len(products))
	categoryIDs := make([]int64, 0, len(products))
	for _, p := range products {
		ownerIDs = append(ownerIDs, p.OwnerID)
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	owners, err := c.userRepo.GetByIDs(ctx, uniqueIDs(ownerIDs))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	categories := map[int64]*domain.Category{}
	if len(categoryIDs) > 0 {
		categories, err = c.categoryRepo.GetByIDs(ctx, uniqueIDs(categoryIDs))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	result := make([]ProductInfo, 0, len(products))
	for i := range products {
		p := &products[i]

		owner, ok := owners[p.OwnerID]
		if !ok {
			c.logger.Warnf("%s: owner %d of product %d not found, skipping", op, p.OwnerID, p.ID)
			continue
		}

		var category *domain.Category
		if p.CategoryID != nil {
			category = categories[*p.CategoryID]
		}

		result = append(result, NewProductInfo(p, owner, category))
	}

	return result, nil
}

func (c *CatalogUseCase) GetProduct(ctx context.Context, productID int64) (*ProductInfo, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info, err := c.productInfo(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

// UpdateProduct частично обновляет товар. Сначала проверяется существование, затем владение, затем данные.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, identity *Identity, req *UpdateProductReq) (*ProductInfo, error) {
	const op = "CatalogUseCase.UpdateProduct"

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := RequireOwnership(identity, product.OwnerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	patch, err := c.buildPatch(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := c.productRepo.Update(ctx, product.Apply(*patch))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("product updated: id=%d by user_id=%d", updated.ID, identity.ID)

	info, err := c.productInfo(ctx, updated)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

// DeleteProduct удаляет товар владельца вместе с заказами на него и файлом в хранилище.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, identity *Identity, productID int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := RequireOwnership(identity, product.OwnerID); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.productRepo.Delete(ctx, productID); err != nil {
		return e.Wrap(op, err)
	}

	if product.AssetKey != nil {
		c.assetsInfra.CleanupAssets([]string{*product.AssetKey})
	}

	c.logger.Infof("product deleted: id=%d by user_id=%d", productID, identity.ID)
	return nil
}

// UploadProductAsset загружает файл товара и заменяет им предыдущий.
// Если сохранить ключ не удалось, новый объект удаляется в фоне.
func (c *CatalogUseCase) UploadProductAsset(ctx context.Context, identity *Identity, req *UploadAssetReq) (*ProductInfo, error) {
	const op = "CatalogUseCase.UploadProductAsset"

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := RequireOwnership(identity, product.OwnerID); err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Body == nil || req.Size == 0 {
		return nil, e.Wrap(op, e.ErrNoFile)
	}

	key, err := c.assetsInfra.UploadAsset(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := c.productRepo.SetAsset(ctx, product.ID, &key)
	if err != nil {
		c.logger.Warnf("cleaning up orphaned asset after failed update: product_id=%d key=%s", product.ID, key)
		c.assetsInfra.CleanupAssets([]string{key})
		return nil, e.Wrap(op, err)
	}

	if product.AssetKey != nil && *product.AssetKey != key {
		c.assetsInfra.CleanupAssets([]string{*product.AssetKey})
	}

	info, err := c.productInfo(ctx, updated)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

// ProductAssetURL возвращает временную ссылку на скачивание файла товара.
func (c *CatalogUseCase) ProductAssetURL(ctx context.Context, productID int64) (string, error) {
	const op = "CatalogUseCase.ProductAssetURL"

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	if product.AssetKey == nil {
		return "", e.Wrap(op, e.ErrAssetNotFound)
	}

	url, err := c.assetsInfra.AssetURL(ctx, *product.AssetKey)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return url, nil
}

// productInfo подставляет владельца и категорию одного товара.
func (c *CatalogUseCase) productInfo(ctx context.Context, product *domain.Product) (*ProductInfo, error) {
	owner, err := c.userRepo.GetByID(ctx, product.OwnerID)
	if err != nil {
		return nil, err
	}

	var category *domain.Category
	if product.CategoryID != nil {
		category, err = c.categoryRepo.GetByID(ctx, *product.CategoryID)
		if err != nil && !errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
	}

	info := NewProductInfo(product, owner, category)
	return &info, nil
}

func (c *CatalogUseCase) buildPatch(ctx context.Context, req *UpdateProductReq) (*domain.ProductPatch, error) {
	patch := &domain.ProductPatch{Description: req.Description}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, e.ErrTitleRequired
		}
		patch.Title = &title
	}

	if req.Price != nil {
		price, err := domain.PriceToCents(*req.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}

	if req.CategoryID != nil {
		category, err := c.getExistingCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		patch.CategoryID = &category.ID
	}

	return patch, nil
}

// getExistingCategory сводит отсутствие категории к ошибке валидации.
func (c *CatalogUseCase) getExistingCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, e.ErrCategoryNotExists
	}

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrCategoryNotExists
		}
		return nil, err
	}

	return category, nil
}

func identityAsUser(identity *Identity) *domain.User {
	return &domain.User{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
		Name:     identity.Name,
		Role:     identity.Role,
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
