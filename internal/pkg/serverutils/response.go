// FILE: internal/pkg/serverutils/response.go
package serverutils

import "github.com/gofiber/fiber/v2"

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}

// ErrorHandlerMiddleware converts errors escaping a handler into the shared
// JSON envelope instead of Fiber's plain-text default.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
