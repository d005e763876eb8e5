package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/backoffice-api/internal/api/dto"
	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/repository"
	"github.com/spec-kit/backoffice-api/internal/service"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

// ResourceHandler exposes CRUD endpoints for one collection.
type ResourceHandler[T domain.Body[T]] struct {
	service *service.ResourceService[T]
}

// NewResourceHandler constructs handler.
func NewResourceHandler[T domain.Body[T]](svc *service.ResourceService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{service: svc}
}

// List handles GET /<collection>.
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	page := repository.Page{
		Limit:  parseInt(c.Query("limit"), repository.DefaultPageLimit),
		Offset: parseInt(c.Query("offset"), 0),
	}.Normalize()

	docs, err := h.service.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	items := make([]dto.DocumentResponse[T], 0, len(docs))
	for i := range docs {
		items = append(items, dto.NewDocumentResponse(&docs[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.PageMeta{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	})
}

// Get handles GET /<collection>/:id.
func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	doc, err := h.service.Get(c.UserContext(), documentID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDocumentResponse(doc)})
}

// Create handles POST /<collection>.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromFiber(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var body T
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	doc, err := h.service.Create(c.UserContext(), actor, body)
	if err != nil {
		return err
	}
	c.Location(c.Path() + "/" + doc.ID)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDocumentResponse(doc)})
}

// Update handles PUT /<collection>/:id.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromFiber(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var body T
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	doc, err := h.service.Update(c.UserContext(), actor, documentID(c), body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDocumentResponse(doc)})
}

// Delete handles DELETE /<collection>/:id.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	actor, ok := auth.IdentityFromFiber(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), actor, documentID(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// documentID copies the route id out of the request buffer, which fasthttp reuses
// once the request is done. Stores may keep it as a map key.
func documentID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
