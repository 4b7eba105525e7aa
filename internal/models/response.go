package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the uniform success envelope every endpoint returns.
type APIResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

// APIErrorResponse is the uniform failure envelope.
type APIErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// Respond writes the success envelope with the given status code.
func Respond(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(APIResponse{
		Status:  status,
		Data:    data,
		Message: message,
		Success: status < 400,
	})
}

// RespondWithError translates any failure, typed or not, into the failure
// envelope. Callers pass the status explicitly when they know it; pass 0 to
// derive it from the error's taxonomy.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if status == 0 {
		status = StatusForError(err)
	}

	resp := APIErrorResponse{
		Status:  status,
		Success: false,
		Errors:  []string{},
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		if appErr.Err != nil {
			resp.Errors = append(resp.Errors, appErr.Err.Error())
		}
	} else {
		resp.Message = err.Error()
	}

	return c.Status(status).JSON(resp)
}
