package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"pm-tools-backend/models"
	apimodels "pm-tools-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан идентификатор записи (%s)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError переводит ошибки бизнес-логики в коды ответа,
// остальное логирует и отдает как 500 с указанным сообщением
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, errMsg string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("запись не найдена"))
	case errors.Is(err, models.ErrDuplicateNumber):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("запись с таким номером уже существует"))
	case errors.Is(err, models.ErrClosureNotAuthorized):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("закрытие риска требует согласования"))
	case errors.Is(err, models.ErrInvalidState):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("операция недоступна в текущем статусе"))
	}
	logger.WithError(err).Error(errMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(errMsg))
}
