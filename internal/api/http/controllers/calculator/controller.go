package calculator

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"exprCalc/internal/api/http/middlewares"
	"exprCalc/internal/api/http/respond"
	"exprCalc/internal/ports"
)

// Controller — маршруты калькулятора: вычисление, история, статистика. Все требуют токен.
type Controller struct {
	uc   ports.ICalculatorUseCase
	auth ports.IAuthUseCase
	log  *slog.Logger
}

// New создаёт контроллер калькулятора; auth нужен мидлвари проверки токена.
func New(uc ports.ICalculatorUseCase, auth ports.IAuthUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, auth: auth, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", middlewares.Auth(c.auth, c.log))

	api.POST("/operations/calculate", c.calculate)
	api.GET("/operations", c.history)
	api.POST("/operations/clear", c.clear)
	api.GET("/statistics", c.stats)
}

// @Summary Вычислить выражение
// @Description Принимает инфиксное выражение (+ - * /, скобки), вычисляет его и сохраняет в историю.
// @Tags operations
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Выражение"
// @Success 200 {object} OperationResponse "Результат вычисления"
// @Failure 400 {object} respond.ErrorResponse "Ошибка выражения: error — вид ошибки"
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/v1/operations/calculate [post]
func (c *Controller) calculate(ctx *gin.Context) {
	var req CalculateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(ctx, c.log, "calculate", err)
		return
	}
	claims, _ := middlewares.Claims(ctx)

	op, err := c.uc.Calculate(ctx.Request.Context(), claims.UserID, req.Expression)
	if err != nil {
		respond.Error(ctx, c.log, "calculate", err)
		return
	}
	ctx.JSON(http.StatusOK, toOperationResponse(*op))
}

// @Summary История операций
// @Tags operations
// @Produce json
// @Success 200 {object} HistoryResponse "Операции пользователя, новые первыми"
// @Router /api/v1/operations [get]
func (c *Controller) history(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	list, err := c.uc.History(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respond.Error(ctx, c.log, "history", err)
		return
	}
	items := make([]OperationResponse, len(list))
	for i, op := range list {
		items[i] = toOperationResponse(op)
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Count: len(items), Items: items})
}

// @Summary Очистить историю
// @Tags operations
// @Produce json
// @Success 200 {object} ClearResponse
// @Router /api/v1/operations/clear [post]
func (c *Controller) clear(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	n, err := c.uc.ClearHistory(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respond.Error(ctx, c.log, "clear history", err)
		return
	}
	ctx.JSON(http.StatusOK, ClearResponse{Message: "history cleared", Deleted: n})
}

// @Summary Статистика пользователя
// @Tags statistics
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /api/v1/statistics [get]
func (c *Controller) stats(ctx *gin.Context) {
	claims, _ := middlewares.Claims(ctx)
	st, err := c.uc.Stats(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respond.Error(ctx, c.log, "stats", err)
		return
	}
	ctx.JSON(http.StatusOK, StatsResponse{
		Total:       st.Total,
		Today:       st.Today,
		Week:        st.Week,
		ByKind:      st.ByKind,
		MemberSince: st.MemberSince,
	})
}
