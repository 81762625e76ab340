package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// conversationService handles conversation and message persistence.
type conversationService struct {
	db *gorm.DB
}

// NewConversationService creates a new ConversationServicer.
func NewConversationService(db *gorm.DB) ConversationServicer {
	return &conversationService{db: db}
}

// EnsureConversation returns the identified conversation if it belongs to
// the user, or creates a new one when no identifier is supplied.
func (s *conversationService) EnsureConversation(userID string, conversationID *string, title string) (*models.Conversation, error) {
	if conversationID != nil && *conversationID != "" {
		var conversation models.Conversation
		if err := s.db.Where("id = ? AND user_id = ?", *conversationID, userID).First(&conversation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrConversationNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &conversation, nil
	}

	if title == "" {
		title = "New conversation"
	}
	// Keep titles readable in conversation lists. Truncate on rune
	// boundaries so multi-byte titles stay valid UTF-8.
	if runes := []rune(title); len(runes) > 60 {
		title = string(runes[:57]) + "..."
	}

	conversation := &models.Conversation{
		UserID: userID,
		Title:  title,
	}
	if err := s.db.Create(conversation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return conversation, nil
}

// AppendMessage appends a role-tagged message to a conversation and advances
// the conversation's updated timestamp.
func (s *conversationService) AppendMessage(conversationID string, role models.MessageRole, content string) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return message, nil
}

// GetUserConversations retrieves a paginated list of conversations, most
// recently active first.
func (s *conversationService) GetUserConversations(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Conversation], error) {
	page.Defaults()

	base := s.db.Model(&models.Conversation{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var conversations []models.Conversation
	if err := base.Scopes(pagination.Paginate(page)).Order("updated_at DESC").Find(&conversations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(conversations, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetConversationByID returns a conversation with its messages in order.
func (s *conversationService) GetConversationByID(userID, conversationID string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("id = ? AND user_id = ?", conversationID, userID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &conversation, nil
}

// DeleteConversation soft-deletes a conversation and its messages.
func (s *conversationService) DeleteConversation(userID, conversationID string) error {
	conversation, err := s.GetConversationByID(userID, conversationID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conversationID).Delete(&models.Message{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(conversation).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
