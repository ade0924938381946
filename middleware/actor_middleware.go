package middleware

import (
	"github.com/gofiber/fiber/v2"
	apimodels "pm-tools-backend/models/api"
)

const actorHeader = "X-Actor-Id"
const actorLocalKey = "actor_id"

// Actor сохраняет идентификатор сотрудника из заголовка запроса
func Actor() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actorID := ctx.Get(actorHeader)
		if actorID != "" {
			ctx.Locals(actorLocalKey, actorID)
		}
		return ctx.Next()
	}
}

// ActorRequired отклоняет запросы без идентификатора сотрудника
func ActorRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetActorID(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("не указан сотрудник, выполняющий операцию"))
		}
		return ctx.Next()
	}
}

func GetActorID(ctx *fiber.Ctx) string {
	if actorID, ok := ctx.Locals(actorLocalKey).(string); ok {
		return actorID
	}
	return ""
}
