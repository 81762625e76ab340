package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shahan-erptechnicals/accu-chat/internal/assistant"
	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// ChatHandler handles assistant chat requests.
type ChatHandler struct {
	dispatcher   *assistant.Dispatcher
	auditService services.AuditServicer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(dispatcher *assistant.Dispatcher, auditService services.AuditServicer) *ChatHandler {
	return &ChatHandler{dispatcher: dispatcher, auditService: auditService}
}

// ChatAttachment is a file sent with a chat message. Data is base64-encoded
// in the JSON payload.
type ChatAttachment struct {
	Filename string `json:"filename" binding:"required,max=255"`
	MIMEType string `json:"mime_type" binding:"required,max=100"`
	Data     []byte `json:"data" binding:"required"`
}

// ChatRequest represents the request payload for sending a chat message.
type ChatRequest struct {
	Message        string           `json:"message" binding:"required,min=1,max=4000"`
	ConversationID *string          `json:"conversation_id" binding:"omitempty,uuid"`
	Attachments    []ChatAttachment `json:"attachments" binding:"omitempty,max=5,dive"`
}

// Chat handles a chat message to the assistant.
// @Summary     Send a chat message
// @Description Send a message to the AI accountant. The assistant may record a transaction or create records on the user's behalf; at most one action is executed per message.
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Chat message"
// @Success     200 {object} assistant.Result "Assistant reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Conversation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	attachments := make([]assistant.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, assistant.Attachment{
			Filename: a.Filename,
			MIMEType: a.MIMEType,
			Data:     a.Data,
		})
	}

	result, err := h.dispatcher.HandleMessage(c.Request.Context(), userID, req.ConversationID, req.Message, attachments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.ActionPerformed {
		h.auditService.Log(userID, result.ActionType, "chat_action", result.ConversationID, c.ClientIP(),
			map[string]interface{}{"conversation_id": result.ConversationID})
	}

	c.JSON(http.StatusOK, result)
}
