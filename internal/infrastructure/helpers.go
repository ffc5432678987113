package infrastructure

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// AssetExtension возвращает расширение файла товара без точки.
// Сначала берётся расширение из имени файла, затем из MIME-типа; если ни то ни другое не подошло, "bin".
func AssetExtension(fileName, contentType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(fileName)), "."); isSafeExtension(ext) {
		return ext
	}

	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			if ext := strings.TrimPrefix(exts[0], "."); isSafeExtension(ext) {
				return ext
			}
		}
	}

	return "bin"
}

// AssetObjectKey строит ключ объекта: products/<id>/<uuid>.<ext>.
func AssetObjectKey(productID int64, fileName, contentType string) string {
	return fmt.Sprintf("products/%d/%s.%s", productID, uuid.NewString(), AssetExtension(fileName, contentType))
}

func isSafeExtension(ext string) bool {
	if ext == "" || len(ext) > 10 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
