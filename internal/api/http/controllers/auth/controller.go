package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exprCalc/internal/api/http/middlewares"
	"exprCalc/internal/api/http/respond"
	"exprCalc/internal/domain"
	"exprCalc/internal/ports"
)

// Controller — маршруты авторизации и профиля.
type Controller struct {
	uc  ports.IAuthUseCase
	log *slog.Logger
}

// New создаёт контроллер авторизации.
func New(uc ports.IAuthUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/api/v1/auth")
	g.POST("/register", c.register)
	g.POST("/login", c.login)
	g.POST("/refresh", c.refresh)

	authed := g.Group("", middlewares.Auth(c.uc, c.log))
	authed.POST("/logout", c.logout)
	authed.GET("/profile", c.profile)
	authed.PATCH("/profile", c.updateProfile)
	authed.DELETE("/account", c.deleteAccount)
}

// @Summary Регистрация
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные пользователя"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} respond.ErrorResponse "Ошибки валидации полей"
// @Failure 409 {object} respond.ErrorResponse "Email уже занят"
// @Router /api/v1/auth/register [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(ctx, c.log, "register", err)
		return
	}
	user, tokens, err := c.uc.Register(ctx.Request.Context(), domain.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respond.Error(ctx, c.log, "register", err)
		return
	}
	ctx.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), Tokens: *tokens})
}

// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учётные данные"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} respond.ErrorResponse "Неверный email или пароль"
// @Router /api/v1/auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(ctx, c.log, "login", err)
		return
	}
	user, tokens, err := c.uc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(ctx, c.log, "login", err)
		return
	}
	ctx.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), Tokens: *tokens})
}

// @Summary Обновить пару токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh-токен"
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (c *Controller) refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(ctx, c.log, "refresh", err)
		return
	}
	tokens, err := c.uc.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		respond.Error(ctx, c.log, "refresh", err)
		return
	}
	ctx.JSON(http.StatusOK, tokens)
}

func (c *Controller) logout(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	if err := c.uc.Logout(ctx.Request.Context(), claims); err != nil {
		respond.Error(ctx, c.log, "logout", err)
		return
	}
	ctx.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

func (c *Controller) profile(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	user, err := c.uc.Profile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respond.Error(ctx, c.log, "profile", err)
		return
	}
	ctx.JSON(http.StatusOK, toUserResponse(user))
}

func (c *Controller) updateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(ctx, c.log, "update profile", err)
		return
	}
	claims, _ := middlewares.Claims(ctx)
	user, err := c.uc.UpdateProfile(ctx.Request.Context(), claims.UserID, domain.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respond.Error(ctx, c.log, "update profile", err)
		return
	}
	ctx.JSON(http.StatusOK, toUserResponse(user))
}

func (c *Controller) deleteAccount(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	if err := c.uc.DeleteAccount(ctx.Request.Context(), claims); err != nil {
		respond.Error(ctx, c.log, "delete account", err)
		return
	}
	ctx.JSON(http.StatusOK, MessageResponse{Message: "account deleted"})
}
