package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/shopspring/decimal"
)

// SeedCategory и SeedProduct описывают демонстрационный каталог.
type SeedCategory struct {
	Name        string
	Description string
}

type SeedProduct struct {
	Title       string
	Description string
	Price       string
	Category    string
}

// SeedAdmin — продавец, от имени которого выставляются демонстрационные товары.
type SeedAdmin struct {
	Username string
	Email    string
	Name     string
	Password string
}

// SeedReport — что было создано за запуск. Повторный запуск ничего не создаёт.
type SeedReport struct {
	AdminCreated      bool
	CategoriesCreated int
	ProductsCreated   int
}

var DefaultSeedCategories = []SeedCategory{
	{Name: "Digital Art", Description: "Digital artwork and designs"},
	{Name: "Software", Description: "Software and applications"},
	{Name: "E-books", Description: "Digital books and guides"},
}

var DefaultSeedProducts = []SeedProduct{
	{Title: "Logo Design Pack", Description: "Professional logo designs for your business", Price: "25.00", Category: "Digital Art"},
	{Title: "Website Template", Description: "Modern responsive website template", Price: "45.00", Category: "Software"},
	{Title: "Python Programming Guide", Description: "Complete guide to learn Python programming", Price: "19.99", Category: "E-books"},
}

// SeedUseCase наполняет пустую базу демонстрационными данными.
// Категории и товары создаются через CatalogUC, поэтому проходят те же проверки, что и запросы API.
type SeedUseCase struct {
	userRepo UserRepository
	hasher   PasswordHasher
	catalog  CatalogUC
	logger   logger.Logger
}

func NewSeedUC(userRepo UserRepository, hasher PasswordHasher, catalog CatalogUC, logger logger.Logger) *SeedUseCase {
	return &SeedUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		catalog:  catalog,
		logger:   logger,
	}
}

// Seed создаёт недостающие категории, продавца-администратора и товары.
// Существующие записи ищутся по имени категории, логину и названию товара и не изменяются.
func (s *SeedUseCase) Seed(ctx context.Context, admin SeedAdmin, categories []SeedCategory, products []SeedProduct) (*SeedReport, error) {
	const op = "SeedUseCase.Seed"

	report := &SeedReport{}

	owner, created, err := s.ensureAdmin(ctx, admin)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	report.AdminCreated = created

	categoryIDs, err := s.ensureCategories(ctx, owner, categories, report)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := s.ensureProducts(ctx, owner, categoryIDs, products, report); err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Infof("seed finished: admin_created=%t categories=%d products=%d",
		report.AdminCreated, report.CategoriesCreated, report.ProductsCreated)

	return report, nil
}

func (s *SeedUseCase) ensureAdmin(ctx context.Context, admin SeedAdmin) (*Identity, bool, error) {
	existing, err := s.userRepo.GetByUsername(ctx, admin.Username)
	if err == nil {
		if !existing.Role.CanSell() {
			return nil, false, e.ErrOnlySellers
		}
		identity := NewIdentity(existing)
		return &identity, false, nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return nil, false, err
	}

	if len(admin.Password) < minPasswordLength {
		return nil, false, e.ErrPasswordTooShort
	}
	if len(admin.Password) > maxPasswordLength {
		return nil, false, e.ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return nil, false, err
	}

	user, err := s.userRepo.Create(ctx, domain.NewUser(admin.Username, admin.Email, admin.Name, domain.RoleSeller, hash))
	if err != nil {
		return nil, false, err
	}

	s.logger.Infof("seed: seller created: id=%d username=%s", user.ID, user.Username)

	identity := NewIdentity(user)
	return &identity, true, nil
}

func (s *SeedUseCase) ensureCategories(ctx context.Context, owner *Identity, categories []SeedCategory, report *SeedReport) (map[string]int64, error) {
	existing, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]int64, len(existing)+len(categories))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, c := range categories {
		if _, ok := ids[c.Name]; ok {
			continue
		}

		created, err := s.catalog.CreateCategory(ctx, owner, &CreateCategoryReq{Name: c.Name, Description: c.Description})
		if err != nil {
			return nil, err
		}
		ids[created.Name] = created.ID
		report.CategoriesCreated++
	}

	return ids, nil
}

func (s *SeedUseCase) ensureProducts(ctx context.Context, owner *Identity, categoryIDs map[string]int64, products []SeedProduct, report *SeedReport) error {
	existing, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}

	titles := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		titles[p.Title] = struct{}{}
	}

	for _, p := range products {
		if _, ok := titles[p.Title]; ok {
			continue
		}

		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			return e.ErrCategoryNotExists
		}

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return e.Wrap(p.Title, errors.Join(e.ErrPricePrecision, err))
		}

		if _, err := s.catalog.CreateProduct(ctx, owner, &CreateProductReq{
			Title:       p.Title,
			Description: p.Description,
			Price:       price,
			CategoryID:  categoryID,
		}); err != nil {
			return err
		}
		titles[p.Title] = struct{}{}
		report.ProductsCreated++
	}

	return nil
}
