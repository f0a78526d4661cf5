package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the common structure for API responses. Redirect
// carries the page the client should navigate to after an auth or
// permission failure; the API itself never issues protocol-level redirects.
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Message  string      `json:"message"`
	Meta     interface{} `json:"meta,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// OK sends a successful JSON response with optional meta information.
func OK(c *fiber.Ctx, data interface{}, message string, meta interface{}) error {
	if message == "" {
		message = "success"
	}

	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    meta,
	})
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// SendRedirect sends an error response telling the client where to go next.
// Used by the access gate: the system degrades to a redirect plus a
// human-readable flash message, never a bare denial.
func SendRedirect(c *fiber.Ctx, status int, message, redirect string) error {
	return c.Status(status).JSON(APIResponse{
		Success:  false,
		Message:  message,
		Redirect: redirect,
	})
}
