package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

const (
	multipartOverhead  = 1 << 20
	maxMultipartMemory = 32 << 20
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
	maxUploadSize  int64
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger, maxUploadSize: maxUploadSize}
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает все товары с категорией и владельцем, новые первыми
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}	ProductResponse
//	@Router			/products [get]
func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUsecase.ListProducts(r.Context())
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponses(products))
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	ErrorResponse	"Некорректный ID"
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := h.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Выставляет товар от имени продавца. Цена в основных единицах, не более двух знаков после точки
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ProductRequest	true	"Товар"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401		{object}	ErrorResponse	"Требуется авторизация"
//	@Failure		403		{object}	ErrorResponse	"Только продавцы"
//	@Router			/products [post]
func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := h.catalogUsecase.CreateProduct(r.Context(), identityFromCtx(r.Context()), &usecase.CreateProductReq{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(product))
}

// updateProduct
//
//	@Summary		Изменение товара
//	@Description	Частично обновляет товар владельца; PUT и PATCH ведут себя одинаково
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"ID товара"
//	@Param			request	body		ProductPatchRequest	true	"Изменяемые поля"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		403		{object}	ErrorResponse	"Не владелец"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id} [patch]
//	@Router			/products/{id} [put]
func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	var req ProductPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := h.catalogUsecase.UpdateProduct(r.Context(), identityFromCtx(r.Context()), &usecase.UpdateProductReq{
		ProductID:   id,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Security	BearerAuth
//	@Param		id	path	int	true	"ID товара"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse	"Не владелец"
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [delete]
func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	if err := h.catalogUsecase.DeleteProduct(r.Context(), identityFromCtx(r.Context()), id); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadAsset
//
//	@Summary		Загрузка файла товара
//	@Description	Загружает цифровой файл товара и заменяет предыдущий
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int		true	"ID товара"
//	@Param			file	formData	file	true	"Файл товара"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Нет файла или он слишком большой"
//	@Failure		403		{object}	ErrorResponse	"Не владелец"
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{id}/asset [put]
func (h *ProductHandler) uploadAsset(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := ensureMultipartForm(r, maxMultipartMemory); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondError(h.logger, w, r, e.ErrNoFile)
			return
		}
		respondError(h.logger, w, r, errors.Join(e.ErrInvalidBody, err))
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		respondError(h.logger, w, r, e.ErrFileTooLarge)
		return
	}

	product, err := h.catalogUsecase.UploadProductAsset(r.Context(), identityFromCtx(r.Context()), &usecase.UploadAssetReq{
		ProductID:   id,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(product))
}

// downloadAsset
//
//	@Summary		Скачивание файла товара
//	@Description	Перенаправляет на временную ссылку в объектном хранилище
//	@Tags			products
//	@Param			id	path	int	true	"ID товара"
//	@Success		302
//	@Failure		404	{object}	ErrorResponse	"Товар или файл не найден"
//	@Router			/products/{id}/asset [get]
func (h *ProductHandler) downloadAsset(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	url, err := h.catalogUsecase.ProductAssetURL(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
