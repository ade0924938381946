package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pm-tools-backend/controllers"
	filestorage "pm-tools-backend/lib/file-storage"
	apimodels "pm-tools-backend/models/api"
)

type attachmentApiController struct {
	controllers.BaseAPIController
}

func initAttachmentRouters(app *fiber.App) {
	controller := attachmentApiController{}
	app.Route("attachment/:id", func(router fiber.Router) {
		router.Get("", controller.download)
		router.Delete("", controller.delete)
	})
}

// @Summary Скачивание вложения
// @Tags Вложения
// @Description Скачивание файла вложения
// @Param   id	path	string	true	"attachment ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [get]
func (c *attachmentApiController) download(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, body, err := filestorage.Instance.Download(ctx.Context(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания вложения")
	}
	ctx.Set("Content-Type", "application/octet-stream")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}

// @Summary Удаление вложения
// @Tags Вложения
// @Description Удаление вложения вместе с файлом в хранилище
// @Param   id	path	string	true	"attachment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [delete]
func (c *attachmentApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = filestorage.Instance.Delete(ctx.Context(), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
