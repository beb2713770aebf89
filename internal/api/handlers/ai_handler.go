package handlers

import (
	"errors"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/service"
	"luminous-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AIHandler struct {
	llmService     *service.LLMService
	receiptService *service.ReceiptService
	adviceService  *service.AdviceService
	chatService    *service.ChatService
	logger         *zap.Logger
}

func NewAIHandler(
	llmService *service.LLMService,
	receiptService *service.ReceiptService,
	adviceService *service.AdviceService,
	chatService *service.ChatService,
	logger *zap.Logger,
) *AIHandler {
	return &AIHandler{
		llmService:     llmService,
		receiptService: receiptService,
		adviceService:  adviceService,
		chatService:    chatService,
		logger:         logger,
	}
}

// Analyze is the generic proxy endpoint: it forwards a prompt (and
// optional inline JPEG) to the model and relays the answer. Blocked or
// empty model output is a 500 with a hint, never an empty 200.
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	text, err := h.llmService.Generate(c.Context(), service.GenerateRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		ImageBase64:  req.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyModelOutput) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "AI response was empty or blocked. Check that the image is clear and try again.",
			})
		}
		h.logger.Error("Analyze failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(dto.AnalyzeResponse{Result: text})
}

// ScanReceipt extracts transaction fields from a base64-encoded receipt
// photo. On success the result is ready to prefill the entry form; on any
// failure the caller keeps manual entry.
func (h *AIHandler) ScanReceipt(c *fiber.Ctx) error {
	var req dto.ScanReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	receipt, err := h.receiptService.Scan(c.Context(), req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyImage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Image is required",
			})
		case errors.Is(err, service.ErrEmptyModelOutput):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "AI response was empty or blocked. Check that the image is clear and try again.",
			})
		case errors.Is(err, service.ErrUnparseableModelOutput):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "AI analysis failed. Please enter the transaction manually.",
			})
		}
		h.logger.Error("Receipt scan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(receipt)
}

// GenerateAdvice aggregates the user's transactions and returns advice
// text together with the computed summary.
func (h *AIHandler) GenerateAdvice(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	var req dto.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.adviceService.GenerateAdvice(c.Context(), session.UserID, req.Mindset)
	if err != nil {
		if errors.Is(err, service.ErrNoTransactions) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No transaction data to analyze. Record income and expenses first.",
			})
		}
		h.logger.Error("Advice generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(resp)
}

// SendChat appends a user message, generates the assistant's reply and
// returns the full transcript. A second send while one is in flight for
// the same user is rejected with 409.
func (h *AIHandler) SendChat(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	messages, err := h.chatService.Send(c.Context(), session.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		case errors.Is(err, service.ErrChatBusy):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A reply is still being generated",
			})
		}
		h.logger.Error("Chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(dto.ChatResponse{Messages: messages})
}

// GetChat returns the user's transcript.
func (h *AIHandler) GetChat(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	return c.JSON(dto.ChatResponse{Messages: h.chatService.History(session.UserID)})
}

// ResetChat drops the user's transcript.
func (h *AIHandler) ResetChat(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	h.chatService.Reset(session.UserID)
	return c.SendStatus(fiber.StatusNoContent)
}
