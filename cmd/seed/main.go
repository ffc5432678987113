package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DRSN-tech/marketplace/internal/app"
	config "github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

// Наполняет базу демонстрационными категориями, продавцом admin и товарами.
// Повторный запуск ничего не дублирует.
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.LoadSeed(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	report, err := app.Seed(ctx, cfg, log)
	stop()
	if err != nil {
		os.Exit(1)
	}

	log.Infof("sample data ready: admin_created=%t categories_created=%d products_created=%d",
		report.AdminCreated, report.CategoriesCreated, report.ProductsCreated)
}
