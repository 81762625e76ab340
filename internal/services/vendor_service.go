package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
)

// vendorService handles vendor-related business logic. It mirrors the
// customer service; the two entities differ only in role.
type vendorService struct {
	db *gorm.DB
}

// NewVendorService creates a new VendorServicer.
func NewVendorService(db *gorm.DB) VendorServicer {
	return &vendorService{db: db}
}

// CreateVendor creates a new vendor for a user.
func (s *vendorService) CreateVendor(userID string, input PartyInput) (*models.Vendor, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "vendor name is required")
	}

	vendor := &models.Vendor{
		UserID:   userID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}
	if input.Type != "" {
		vendor.Type = input.Type
	}
	if input.PaymentTerms != nil {
		vendor.PaymentTerms = *input.PaymentTerms
	}
	if input.CreditLimit != nil {
		vendor.CreditLimit = *input.CreditLimit
	}

	if err := s.db.Create(vendor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return vendor, nil
}

// GetUserVendors retrieves a paginated list of vendors for a user.
func (s *vendorService) GetUserVendors(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Vendor], error) {
	page.Defaults()

	base := s.db.Model(&models.Vendor{}).Where("user_id = ?", userID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var vendors []models.Vendor
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&vendors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(vendors, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetVendorByID retrieves a vendor by ID for a specific user.
func (s *vendorService) GetVendorByID(userID, vendorID string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.Where("id = ? AND user_id = ?", vendorID, userID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVendorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &vendor, nil
}

// UpdateVendor updates an existing vendor's fields.
func (s *vendorService) UpdateVendor(userID, vendorID string, input PartyInput, isActive *bool) (*models.Vendor, error) {
	vendor, err := s.GetVendorByID(userID, vendorID)
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
		if err := s.db.Model(vendor).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return vendor, nil
}

// DeleteVendor soft-deletes a vendor.
func (s *vendorService) DeleteVendor(userID, vendorID string) error {
	vendor, err := s.GetVendorByID(userID, vendorID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(vendor).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
