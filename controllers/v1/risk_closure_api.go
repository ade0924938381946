package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pm-tools-backend/controllers"
	riskclosurehandler "pm-tools-backend/lib/risk-closure"
	"pm-tools-backend/middleware"
	apimodels "pm-tools-backend/models/api"
	entityapimodels "pm-tools-backend/models/api/entity"
)

type riskClosureApiController struct {
	controllers.BaseAPIController
}

func initRiskClosureRouters(router fiber.Router) {
	controller := riskClosureApiController{}
	router.Route(":id/closure", func(closureRoute fiber.Router) {
		closureRoute.Get("", controller.getRequests)
		closureRoute.Post("request", middleware.ActorRequired(), controller.request)
		closureRoute.Post("approve", middleware.ActorRequired(), controller.approve)
		closureRoute.Post("reject", middleware.ActorRequired(), controller.reject)
	})
}

// @Summary Запрос закрытия риска
// @Tags Согласование закрытия
// @Description Запрос закрытия риска, переводит риск в PendingClosureApproval
// @Param   X-Actor-Id	header	string									true	"ид сотрудника"
// @Param   id			path	string									true	"rec ID"
// @Param	body 		body	entityapimodels.ClosureRequestData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/closure/request [post]
func (c *riskClosureApiController) request(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload entityapimodels.ClosureRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	if err = riskclosurehandler.Instance.RequestClosure(id, actorID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запроса закрытия риска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать закрытие
// @Tags Согласование закрытия
// @Description Согласование закрытия риска, переводит риск в Closed
// @Param   X-Actor-Id	header	string									true	"ид сотрудника"
// @Param   id			path	string									true	"rec ID"
// @Param	body 		body	entityapimodels.ClosureDecisionData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/closure/approve [post]
func (c *riskClosureApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload entityapimodels.ClosureDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	if err = riskclosurehandler.Instance.ApproveClosure(id, actorID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования закрытия риска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить закрытие
// @Tags Согласование закрытия
// @Description Отклонение закрытия риска, возвращает риск в прежний статус
// @Param   X-Actor-Id	header	string									true	"ид сотрудника"
// @Param   id			path	string									true	"rec ID"
// @Param	body 		body	entityapimodels.ClosureDecisionData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/closure/reject [post]
func (c *riskClosureApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload entityapimodels.ClosureDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	if err = riskclosurehandler.Instance.RejectClosure(id, actorID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения закрытия риска")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary История согласований
// @Tags Согласование закрытия
// @Description История запросов закрытия риска
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]entityapimodels.ClosureRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/closure [get]
func (c *riskClosureApiController) getRequests(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := riskclosurehandler.Instance.GetRequests(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласований")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
