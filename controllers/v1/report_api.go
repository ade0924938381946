package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pm-tools-backend/controllers"
	reporthandler "pm-tools-backend/lib/report"
	apimodels "pm-tools-backend/models/api"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("report", func(router fiber.Router) {
		router.Get("status_summary", controller.statusSummary)
		router.Get("risk_matrix", controller.riskMatrix)
		router.Get("overdue_actions", controller.overdueActions)
	})
}

// @Summary Сводка по статусам
// @Tags Отчеты
// @Description Количество записей по типам и статусам
// @Param   project_id	query	string	false	"фильтр по проекту"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.StatusSummaryView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/status_summary [get]
func (c *reportApiController) statusSummary(ctx *fiber.Ctx) error {
	result, err := reporthandler.Instance.StatusSummary(ctx.Query("project_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка построения сводки по статусам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Матрица рисков
// @Tags Отчеты
// @Description Распределение открытых рисков по вероятности и влиянию
// @Param   project_id	query	string	false	"фильтр по проекту"
// @Success 200 {object} apimodels.Response{data=reportapimodels.RiskMatrixView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/risk_matrix [get]
func (c *reportApiController) riskMatrix(ctx *fiber.Ctx) error {
	result, err := reporthandler.Instance.RiskMatrix(ctx.Query("project_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка построения матрицы рисков")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Просроченные задачи
// @Tags Отчеты
// @Description Незавершенные задачи с истекшим сроком
// @Param   project_id	query	string	false	"фильтр по проекту"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.OverdueActionView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/report/overdue_actions [get]
func (c *reportApiController) overdueActions(ctx *fiber.Ctx) error {
	result, err := reporthandler.Instance.OverdueActions(ctx.Query("project_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения просроченных задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
