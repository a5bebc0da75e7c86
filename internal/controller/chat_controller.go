package controller

import (
	"errors"

	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/pkg/serverutils"
	"shiksha-saathi-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetHistory(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	StartNewQuestion(ctx *fiber.Ctx) error
	SaveQuestion(ctx *fiber.Ctx) error
	GetSavedQuestions(ctx *fiber.Ctx) error
	DeleteSavedQuestion(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/history", c.GetHistory)
	h.Post("/messages", c.SendMessage)
	h.Post("/new-question", c.StartNewQuestion)
	h.Post("/save-question", c.SaveQuestion)
	h.Get("/saved-questions", c.GetSavedQuestions)
	h.Delete("/saved-questions/:id", c.DeleteSavedQuestion)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	isVoice := ctx.QueryBool("voice", false)

	res, err := c.service.GetHistory(ctx.Context(), userId, isVoice)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

// StartNewQuestion inserts a block separator without saving the block.
func (c *chatController) StartNewQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	isVoice := ctx.QueryBool("voice", false)

	res, err := c.service.AddSeparator(ctx.Context(), userId, isVoice)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start new question", res))
}

func (c *chatController) SaveQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	isVoice := ctx.QueryBool("voice", false)

	res, err := c.service.SaveCurrentBlock(ctx.Context(), userId, isVoice)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save current question", res))
}

func (c *chatController) GetSavedQuestions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetSavedQuestions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get saved questions", res))
}

func (c *chatController) DeleteSavedQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid saved question ID")
	}

	if err := c.service.DeleteSavedQuestion(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrSavedQuestionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Saved question deleted", nil))
}
