package domain

import "io"

// Asset — загружаемый файл цифрового товара, который хранится в S3.
type Asset struct {
	ObjectKey   string
	Body        io.Reader
	Size        int64 // -1, если размер неизвестен
	ContentType string
	FileName    string
}

func NewAsset(objectKey string, body io.Reader, size int64, contentType, fileName string) *Asset {
	return &Asset{
		ObjectKey:   objectKey,
		Body:        body,
		Size:        size,
		ContentType: contentType,
		FileName:    fileName,
	}
}
