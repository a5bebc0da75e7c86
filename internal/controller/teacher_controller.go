package controller

import (
	"errors"

	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/pkg/serverutils"
	"shiksha-saathi-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITeacherController interface {
	RegisterRoutes(r fiber.Router)
	GetDoubts(ctx *fiber.Ctx) error
	AnalyzeTopics(ctx *fiber.Ctx) error
	TopDoubtSuggestions(ctx *fiber.Ctx) error
	UpdateDoubtStatus(ctx *fiber.Ctx) error
	ListStudents(ctx *fiber.Ctx) error
	StudentChat(ctx *fiber.Ctx) error
	ClassroomProgress(ctx *fiber.Ctx) error
}

type teacherController struct {
	service service.ITeacherService
}

func NewTeacherController(service service.ITeacherService) ITeacherController {
	return &teacherController{service: service}
}

func (c *teacherController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/teacher/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(entity.RoleTeacher))
	h.Get("/doubts", c.GetDoubts)
	h.Get("/topics", c.AnalyzeTopics)
	h.Get("/top-doubts", c.TopDoubtSuggestions)
	h.Patch("/doubts/:id/status", c.UpdateDoubtStatus)
	h.Get("/students", c.ListStudents)
	h.Get("/students/:id/chat", c.StudentChat)
	h.Get("/progress", c.ClassroomProgress)
}

func (c *teacherController) GetDoubts(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	res, err := c.service.GetDoubts(ctx.Context(), status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get doubts", res))
}

func (c *teacherController) AnalyzeTopics(ctx *fiber.Ctx) error {
	res, err := c.service.AnalyzeTopics(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze topics", res))
}

func (c *teacherController) TopDoubtSuggestions(ctx *fiber.Ctx) error {
	res, err := c.service.TopDoubtSuggestions(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Failed to generate suggestions")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get top doubt suggestions", res))
}

func (c *teacherController) ListStudents(ctx *fiber.Ctx) error {
	res, err := c.service.ListStudents(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get students", res))
}

func (c *teacherController) StudentChat(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student ID")
	}

	res, err := c.service.StudentChat(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get student chat", res))
}

func (c *teacherController) ClassroomProgress(ctx *fiber.Ctx) error {
	res, err := c.service.ClassroomProgress(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get classroom progress", res))
}

func (c *teacherController) UpdateDoubtStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doubt ID")
	}

	var req dto.UpdateDoubtStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateDoubtStatus(ctx.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrDoubtNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Doubt status updated", nil))
}
