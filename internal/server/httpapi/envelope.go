// Package httpapi exposes the HTTP/JSON API the web client consumes. Every
// response uses the same envelope: an "error" flag, a "message", and an
// operation-specific payload key. Routes, field names and messages are a
// frozen contract with the existing frontend.
package httpapi

import "github.com/labstack/echo/v4"

// fail writes an error envelope with the given status.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"error": true, "message": message})
}

// ok writes a success envelope, merging the payload keys in.
func ok(c echo.Context, status int, message string, payload echo.Map) error {
	body := echo.Map{"error": false, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}
