package apiv1

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"pm-tools-backend/controllers"
	actionhandler "pm-tools-backend/lib/action"
	pdfexport "pm-tools-backend/lib/export/pdf"
	filestorage "pm-tools-backend/lib/file-storage"
	reporthandler "pm-tools-backend/lib/report"
	workflowhandler "pm-tools-backend/lib/workflow"
	"pm-tools-backend/middleware"
	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
	actionapimodels "pm-tools-backend/models/api/action"
	entityapimodels "pm-tools-backend/models/api/entity"
)

type entityApiController struct {
	controllers.BaseAPIController
	def models.EntityDefinition
}

// InitEntityApiRouters регистрирует маршруты реестра для каждого типа записей,
// маршруты согласования закрытия подключаются только для рисков
func InitEntityApiRouters(app *fiber.App) {
	for _, def := range models.Definitions() {
		controller := entityApiController{def: def}
		app.Route(string(def.Type), func(router fiber.Router) {
			router.Post("list", controller.list)
			router.Put("export", controller.export)
			router.Post("", middleware.ActorRequired(), controller.create)
			router.Route(":id", func(idRoute fiber.Router) {
				idRoute.Get("", controller.get)
				idRoute.Put("", middleware.ActorRequired(), controller.update)
				idRoute.Delete("", controller.delete)
				idRoute.Get("logs", controller.logs)
				idRoute.Get("export_pdf", controller.exportPdf)
				idRoute.Post("comment", middleware.ActorRequired(), controller.addComment)
				idRoute.Route("action", func(actionRoute fiber.Router) {
					actionRoute.Get("", controller.actionList)
					actionRoute.Post("", middleware.ActorRequired(), controller.actionCreate)
					actionRoute.Route(":actionId", func(actionIDRoute fiber.Router) {
						actionIDRoute.Put("", middleware.ActorRequired(), controller.actionUpdate)
						actionIDRoute.Delete("", controller.actionDelete)
					})
				})
				idRoute.Route("attachment", func(attachmentRoute fiber.Router) {
					attachmentRoute.Get("", controller.attachmentList)
					attachmentRoute.Post("", middleware.ActorRequired(), controller.attachmentUpload)
				})
			})
			if def.Type == models.EntityTypeRisk {
				initRiskClosureRouters(router)
			}
		})
	}
	initAttachmentRouters(app)
}

func (c *entityApiController) handler() workflowhandler.Provider {
	return workflowhandler.Instance(c.def.Type)
}

// @Summary Создание записи
// @Tags Реестр
// @Description Создание записи реестра
// @Param   X-Actor-Id	header	string									true	"ид сотрудника"
// @Param	body 		body	entityapimodels.EntityCreateData		true	"request body"
// @Success 200 {object} apimodels.Response{data=entityapimodels.EntityView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type} [post]
func (c *entityApiController) create(ctx *fiber.Ctx) error {
	var payload entityapimodels.EntityCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(c.def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	result, err := c.handler().Create(actorID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Получение записи
// @Tags Реестр
// @Description Получение записи реестра
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=entityapimodels.EntityView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id} [get]
func (c *entityApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := c.handler().GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Обновление записи
// @Tags Реестр
// @Description Частичное обновление записи, смена статуса журналируется
// @Param   X-Actor-Id	header	string								true	"ид сотрудника"
// @Param   id			path	string								true	"rec ID"
// @Param	body 		body	entityapimodels.EntityUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=entityapimodels.EntityView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id} [put]
func (c *entityApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload entityapimodels.EntityUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(c.def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	result, err := c.handler().Update(id, actorID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление записи
// @Tags Реестр
// @Description Удаление записи вместе с журналом, задачами и вложениями
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id} [delete]
func (c *entityApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.handler().Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список записей
// @Tags Реестр
// @Description Список записей реестра с фильтрацией и пагинацией
// @Param	body 	body	entityapimodels.EntityFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]entityapimodels.EntityView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/list [post]
func (c *entityApiController) list(ctx *fiber.Ctx) error {
	var payload entityapimodels.EntityFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := c.handler().List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка записей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Журнал записи
// @Tags Реестр
// @Description Журнал изменений записи, от новых к старым
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]entityapimodels.LogView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/logs [get]
func (c *entityApiController) logs(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.handler().Logs(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Комментарий
// @Tags Реестр
// @Description Добавление комментария в журнал записи
// @Param   X-Actor-Id	header	string							true	"ид сотрудника"
// @Param   id			path	string							true	"rec ID"
// @Param	body 		body	entityapimodels.CommentData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/comment [post]
func (c *entityApiController) addComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload entityapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	if err = c.handler().AddComment(id, actorID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка реестра в Excel
// @Tags Реестр
// @Description Выгрузка реестра с задачами в Excel
// @Param	body 	body	entityapimodels.EntityFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/export [put]
func (c *entityApiController) export(ctx *fiber.Ctx) error {
	var payload entityapimodels.EntityFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := reporthandler.Instance.RegisterExportToXls(c.def.Type, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра в Excel")
	}
	fileName := fmt.Sprintf("%s-register-%v.xlsx", c.def.Type, time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Карточка записи в PDF
// @Tags Реестр
// @Description Выгрузка карточки записи с журналом изменений в PDF
// @Param   id	path	string	true	"rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/export_pdf [get]
func (c *entityApiController) exportPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := c.handler().GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи")
	}
	logs, err := c.handler().Logs(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала записи")
	}
	body, err := pdfexport.GenerateEntityCard(view, logs)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки карточки записи в PDF")
	}
	fileName := fmt.Sprintf("%s.pdf", view.Number)
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}

// @Summary Список задач
// @Tags Задачи
// @Description Список задач записи
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]actionapimodels.ActionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/action [get]
func (c *entityApiController) actionList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := actionhandler.Instance.List(c.def.Type, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание задачи
// @Tags Задачи
// @Description Создание задачи при записи
// @Param   X-Actor-Id	header	string							true	"ид сотрудника"
// @Param   id			path	string							true	"rec ID"
// @Param	body 		body	actionapimodels.ActionData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/action [post]
func (c *entityApiController) actionCreate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload actionapimodels.ActionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	actionID, err := actionhandler.Instance.Create(c.def.Type, id, actorID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(actionID))
}

// @Summary Обновление задачи
// @Tags Задачи
// @Description Частичное обновление задачи
// @Param   X-Actor-Id	header	string								true	"ид сотрудника"
// @Param   id			path	string								true	"rec ID"
// @Param   actionId	path	string								true	"action rec ID"
// @Param	body 		body	actionapimodels.ActionUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/action/{actionId} [put]
func (c *entityApiController) actionUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actionID, err := c.GetIDByKey(ctx, "actionId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload actionapimodels.ActionUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actorID := middleware.GetActorID(ctx)
	if err = actionhandler.Instance.Update(c.def.Type, id, actionID, actorID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление задачи
// @Tags Задачи
// @Description Удаление задачи
// @Param   id			path	string	true	"rec ID"
// @Param   actionId	path	string	true	"action rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/action/{actionId} [delete]
func (c *entityApiController) actionDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actionID, err := c.GetIDByKey(ctx, "actionId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = actionhandler.Instance.Delete(c.def.Type, id, actionID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список вложений
// @Tags Вложения
// @Description Список вложений записи
// @Param   id	path	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]attachmentapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/attachment [get]
func (c *entityApiController) attachmentList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := filestorage.Instance.List(c.def.Type, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Загрузка вложения
// @Tags Вложения
// @Description Загрузка файла к записи
// @Param   X-Actor-Id	header	string	true	"ид сотрудника"
// @Param   id			path	string	true	"rec ID"
// @Param   file		formData file	true	"файл"
// @Success 200 {object} apimodels.Response{data=attachmentapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/{entity_type}/{id}/attachment [post]
func (c *entityApiController) attachmentUpload(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}

	actorID := middleware.GetActorID(ctx)
	result, err := filestorage.Instance.Upload(ctx.Context(), c.def.Type, id, fileHeader.Filename, body, actorID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
