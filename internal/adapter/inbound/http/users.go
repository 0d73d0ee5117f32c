package http_handler

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	view, err := s.users.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	view, err := s.users.Me(c.Context(), c.Get(headerToken))
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) handleConnect(c *fiber.Ctx) error {
	email, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return s.sendJSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	token, err := s.users.Connect(c.Context(), email, password)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

func (s *Server) handleDisconnect(c *fiber.Ctx) error {
	if err := s.users.Disconnect(c.Context(), c.Get(headerToken)); err != nil {
		return s.sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseBasicAuth decodes an `Authorization: Basic base64(email:password)`
// header.
func parseBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	creds := strings.SplitN(string(decoded), ":", 2)
	if len(creds) != 2 {
		return "", "", false
	}
	return creds[0], creds[1], true
}
