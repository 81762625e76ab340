package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// ConversationHandler handles conversation history requests.
type ConversationHandler struct {
	conversationService services.ConversationServicer
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversationService services.ConversationServicer) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// GetConversations handles listing the user's conversations.
// @Summary     Get conversations
// @Description Get a paginated list of conversations, most recently active first
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Conversation] "Paginated conversations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations [get]
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.conversationService.GetUserConversations(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetConversation handles retrieving a conversation with its messages.
// @Summary     Get conversation by ID
// @Description Get a conversation and its messages in chronological order
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Conversation ID"
// @Success     200 {object} models.Conversation "Conversation with messages"
// @Failure     400 {object} ErrorResponse "Invalid conversation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Conversation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations/{id} [get]
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	conversationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	conversation, err := h.conversationService.GetConversationByID(userID, conversationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// DeleteConversation handles deleting a conversation and its messages.
// @Summary     Delete conversation
// @Description Soft delete a conversation and its messages
// @Tags        conversations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Conversation ID"
// @Success     204 "Conversation deleted"
// @Failure     400 {object} ErrorResponse "Invalid conversation ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Conversation not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	conversationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.conversationService.DeleteConversation(userID, conversationID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
