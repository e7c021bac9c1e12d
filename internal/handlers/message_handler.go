package handlers

import (
	"log"

	"autosouq/internal/middleware"
	"autosouq/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for buyer/seller chat. The chat UI
// polls the thread endpoint; there is no push transport.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the message routes with the Fiber app.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	messages := router.Group("/messages", authRequired)
	messages.Get("/", h.HandleGet)
	messages.Post("/", h.HandleSend)
}

// HandleGet returns either the conversation list or, with a "with" query
// parameter, the message thread with that counterpart. Opening a thread
// marks the counterpart's unread messages as read.
func (h *MessageHandler) HandleGet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if with := c.Query("with"); with != "" {
		messages, err := h.service.Thread(userID, with)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(messages)
	}

	conversations, err := h.service.Conversations(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversations)
}

// SendMessageRequest is the message creation payload.
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required,min=1"`
}

// HandleSend delivers a new message to the receiver.
func (h *MessageHandler) HandleSend(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing message request body: %v", err)
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	message, err := h.service.Send(middleware.UserID(c), req.ReceiverID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}
