package http

import (
	"net/http"

	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

// register
//
//	@Summary		Регистрация пользователя
//	@Description	Создаёт покупателя или продавца и сразу выдаёт пару токенов
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Данные пользователя"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse	"Логин или email заняты"
//	@Router			/register [post]
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res, err := h.authUsecase.Register(r.Context(), &usecase.RegisterReq{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newAuthResponse(res))
}

// login
//
//	@Summary		Вход
//	@Description	Проверяет логин и пароль и выдаёт пару токенов
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Логин и пароль"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	ErrorResponse	"Некорректное тело запроса"
//	@Failure		401		{object}	ErrorResponse	"Неверные учётные данные"
//	@Router			/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res, err := h.authUsecase.Authenticate(r.Context(), &usecase.LoginReq{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAuthResponse(res))
}

// refresh
//
//	@Summary		Обновление токенов
//	@Description	Обменивает refresh-токен на новую пару; предъявленный refresh-токен отзывается
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	true	"Refresh-токен"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	ErrorResponse	"Некорректное тело запроса"
//	@Failure		401		{object}	ErrorResponse	"Токен недействителен или отозван"
//	@Router			/token/refresh [post]
func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	if req.RefreshToken == "" {
		respondError(h.logger, w, r, e.ErrRefreshTokenRequired)
		return
	}

	res, err := h.authUsecase.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAuthResponse(res))
}

// logout
//
//	@Summary		Выход
//	@Description	Отзывает текущий токен доступа и, если передан, refresh-токен
//	@Tags			auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	LogoutRequest	false	"Refresh-токен для отзыва"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse	"Некорректное тело запроса"
//	@Failure		401	{object}	ErrorResponse	"Нет или недействителен токен"
//	@Router			/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(h.logger, w, r, err)
			return
		}
	}

	err := h.authUsecase.Logout(r.Context(), &usecase.LogoutReq{
		AccessToken:  tokenFromCtx(r.Context()),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// me
//
//	@Summary		Текущий пользователь
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	ErrorResponse	"Нет или недействителен токен"
//	@Router			/users/me [get]
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	identity := identityFromCtx(r.Context())
	if identity == nil {
		respondError(h.logger, w, r, e.ErrMissingToken)
		return
	}

	WriteSuccess(w, http.StatusOK, newUserResponse(identity))
}
