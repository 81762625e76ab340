package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// customerService handles customer-related business logic.
type customerService struct {
	db *gorm.DB
}

// NewCustomerService creates a new CustomerServicer.
func NewCustomerService(db *gorm.DB) CustomerServicer {
	return &customerService{db: db}
}

// CreateCustomer creates a new customer for a user.
func (s *customerService) CreateCustomer(userID string, input PartyInput) (*models.Customer, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "customer name is required")
	}

	customer := &models.Customer{
		UserID:   userID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}
	if input.Type != "" {
		customer.Type = input.Type
	}
	if input.PaymentTerms != nil {
		customer.PaymentTerms = *input.PaymentTerms
	}
	if input.CreditLimit != nil {
		customer.CreditLimit = *input.CreditLimit
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return customer, nil
}

// GetUserCustomers retrieves a paginated list of customers for a user.
func (s *customerService) GetUserCustomers(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Customer], error) {
	page.Defaults()

	base := s.db.Model(&models.Customer{}).Where("user_id = ?", userID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var customers []models.Customer
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(customers, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCustomerByID retrieves a customer by ID for a specific user.
func (s *customerService) GetCustomerByID(userID, customerID string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("id = ? AND user_id = ?", customerID, userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &customer, nil
}

// UpdateCustomer updates an existing customer's fields.
func (s *customerService) UpdateCustomer(userID, customerID string, input PartyInput, isActive *bool) (*models.Customer, error) {
	customer, err := s.GetCustomerByID(userID, customerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Type != "" {
		updates["type"] = input.Type
	}
	if input.PaymentTerms != nil {
		updates["payment_terms"] = *input.PaymentTerms
	}
	if input.CreditLimit != nil {
		updates["credit_limit"] = *input.CreditLimit
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(customer).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer.
func (s *customerService) DeleteCustomer(userID, customerID string) error {
	customer, err := s.GetCustomerByID(userID, customerID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(customer).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
