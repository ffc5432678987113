package app

import (
	"context"

	config "github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/internal/infrastructure/auth"
	"github.com/DRSN-tech/marketplace/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/marketplace/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Seed применяет миграции и наполняет базу демонстрационным каталогом.
// Нужен только Postgres: файлы товаров при наполнении не загружаются.
func Seed(ctx context.Context, cfg *config.SeedCfg, log logger.Logger) (*usecase.SeedReport, error) {
	db, err := initPGDB(log, cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer db.Close()

	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverterImpl{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})

	catalogUC := usecase.NewCatalogUC(categoryRepo, productRepo, userRepo, nil, log)
	seedUC := usecase.NewSeedUC(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), catalogUC, log)

	report, err := seedUC.Seed(ctx, usecase.SeedAdmin{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Name:     "Admin User",
		Password: cfg.AdminPassword,
	}, usecase.DefaultSeedCategories, usecase.DefaultSeedProducts)
	if err != nil {
		log.Errorf(err, "failed to seed database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return report, nil
}
