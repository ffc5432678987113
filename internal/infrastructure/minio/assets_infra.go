package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/infrastructure"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/jitter"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

const (
	cleanupAttempts    = 3
	cleanupBaseBackoff = time.Second
	cleanupMaxBackoff  = 8 * time.Second
	cleanupTimeout     = 30 * time.Second
)

// AssetsInfrastructure управляет загрузкой, выдачей и очисткой файлов товаров в MinIO.
type AssetsInfrastructure struct {
	assetRepo   usecase.AssetRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewAssetsInfrastructure(assetRepo usecase.AssetRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *AssetsInfrastructure {
	return &AssetsInfrastructure{
		assetRepo:   assetRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadAsset сохраняет файл товара под новым уникальным ключом и возвращает этот ключ.
// Файлы больше MaxAssetSize отклоняются; если размер неизвестен, тело читается не дальше лимита.
func (m *AssetsInfrastructure) UploadAsset(ctx context.Context, req *usecase.UploadAssetReq) (string, error) {
	const op = "AssetsInfrastructure.UploadAsset"

	if m.cfg.MaxAssetSize > 0 && req.Size > m.cfg.MaxAssetSize {
		return "", e.Wrap(op, e.ErrFileTooLarge)
	}

	body := req.Body
	if req.Size < 0 && m.cfg.MaxAssetSize > 0 {
		body = io.LimitReader(req.Body, m.cfg.MaxAssetSize)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := infrastructure.AssetObjectKey(req.ProductID, req.FileName, contentType)
	asset := domain.NewAsset(key, body, req.Size, contentType, req.FileName)

	uploaded, err := m.assetRepo.Upload(ctx, asset)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", req.FileName, err))
	}

	m.logger.Debugf("%s: uploaded asset key=%s size=%d", op, uploaded, req.Size)
	return uploaded, nil
}

// AssetURL возвращает подписанную ссылку на скачивание с ограниченным сроком жизни.
func (m *AssetsInfrastructure) AssetURL(ctx context.Context, key string) (string, error) {
	const op = "AssetsInfrastructure.AssetURL"

	u, err := m.assetRepo.PresignedGet(ctx, key, path.Base(key), m.cfg.PresignTTL)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return u.String(), nil
}

// CleanupAssets запускает фоновое удаление указанных объектов.
func (m *AssetsInfrastructure) CleanupAssets(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanup(keys)
}

// cleanup удаляет объекты с экспоненциальной задержкой и jitter между попытками.
func (m *AssetsInfrastructure) cleanup(keys []string) {
	defer m.wg.Done()
	const op = "AssetsInfrastructure.cleanup"

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.assetRepo.Delete(ctx, key)
			if err == nil {
				m.logger.Debugf("%s: removed key=%s", op, key)
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(cleanupBaseBackoff, cleanupMaxBackoff, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения фоновых удалений с учётом таймаута завершения приложения.
func (m *AssetsInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
