package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// AssetRepo реализует хранилище файлов товаров поверх MinIO.
type AssetRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewAssetRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *AssetRepo {
	return &AssetRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает файл в MinIO и возвращает ключ объекта.
// Размер -1 включает потоковую загрузку частями.
func (a *AssetRepo) Upload(ctx context.Context, asset *domain.Asset) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: asset.ContentType,
	}
	if asset.FileName != "" {
		opts.UserMetadata = map[string]string{"original-name": url.PathEscape(asset.FileName)}
	}

	info, err := a.mc.PutObject(ctx, a.cfg.BucketName, asset.ObjectKey, asset.Body, asset.Size, opts)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (a *AssetRepo) Delete(ctx context.Context, key string) error {
	if err := a.mc.RemoveObject(ctx, a.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignedGet выдаёт временную ссылку на скачивание. Если указано fileName,
// ответ MinIO будет содержать Content-Disposition: attachment с этим именем.
func (a *AssetRepo) PresignedGet(ctx context.Context, key string, fileName string, ttl time.Duration) (*url.URL, error) {
	params := make(url.Values)
	if fileName != "" {
		params.Set("response-content-disposition", contentDisposition(fileName))
	}

	u, err := a.mc.PresignedGetObject(ctx, a.cfg.BucketName, key, ttl, params)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u, nil
}

func contentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=%q", fileName)
}
