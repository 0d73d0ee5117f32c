package http_handler

import (
	"strconv"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/gofiber/fiber/v2"
)

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID int64  `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	view, err := s.files.Create(c.Context(), port.CreateFileInput{
		Token:    c.Get(headerToken),
		Name:     req.Name,
		Type:     domain.FileType(req.Type),
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		return s.sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

func (s *Server) handleShow(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	}

	view, err := s.files.Get(c.Context(), c.Get(headerToken), fileID)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	in := port.ListFilesInput{Token: c.Get(headerToken)}

	// Presence matters: an absent parentId and page select the unscoped
	// listing, while parentId=0 filters on the root.
	if raw := c.Query("parentId"); raw != "" {
		parentID, err := parseID(raw)
		if err != nil {
			return c.JSON([]domain.FileView{})
		}
		in.ParentID = &parentID
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON([]domain.FileView{})
		}
		in.Page = &page
	}

	views, err := s.files.List(c.Context(), in)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(views)
}

func (s *Server) handlePublish(c *fiber.Ctx) error {
	return s.setVisibility(c, true)
}

func (s *Server) handleUnpublish(c *fiber.Ctx) error {
	return s.setVisibility(c, false)
}

func (s *Server) setVisibility(c *fiber.Ctx, public bool) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	}

	view, err := s.files.SetPublic(c.Context(), c.Get(headerToken), fileID, public)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(view)
}

func (s *Server) handleData(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	}

	size := 0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
		}
	}

	stream, contentType, err := s.files.Content(c.Context(), c.Get(headerToken), fileID, size)
	if err != nil {
		return s.sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(stream)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
