package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// VendorHandler handles vendor-related requests. It mirrors CustomerHandler
// and shares the PartyRequest payload.
type VendorHandler struct {
	vendorService services.VendorServicer
	auditService  services.AuditServicer
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService services.VendorServicer, auditService services.AuditServicer) *VendorHandler {
	return &VendorHandler{vendorService: vendorService, auditService: auditService}
}

// CreateVendor handles the creation of a new vendor.
// @Summary     Create a vendor
// @Description Create a new vendor record
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PartyRequest true "Vendor details"
// @Success     201 {object} models.Vendor "Vendor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	vendor, err := h.vendorService.CreateVendor(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_VENDOR", "vendor", vendor.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"vendor": vendor})
}

// GetVendors handles listing vendors for the authenticated user.
// @Summary     Get vendors
// @Description Get a paginated list of vendors
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only include active vendors"
// @Param       page        query int  false "Page number (default 1)"
// @Param       page_size   query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Vendor] "Paginated vendors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vendors [get]
func (h *VendorHandler) GetVendors(c *gin.Context) {
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

	activeOnly := c.Query("active_only") == "true"

	result, err := h.vendorService.GetUserVendors(userID, page, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVendor handles retrieving a specific vendor.
// @Summary     Get vendor by ID
// @Description Get a specific vendor by ID
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vendor ID"
// @Success     200 {object} models.Vendor "Vendor details"
// @Failure     400 {object} ErrorResponse "Invalid vendor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vendorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	vendor, err := h.vendorService.GetVendorByID(userID, vendorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// UpdateVendor handles updating an existing vendor.
// @Summary     Update vendor
// @Description Update a vendor's details
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Vendor ID"
// @Param       request body PartyRequest true "Updated vendor details"
// @Success     200 {object} models.Vendor "Updated vendor"
// @Failure     400 {object} ErrorResponse "Invalid input or vendor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vendorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	vendor, err := h.vendorService.UpdateVendor(userID, vendorID, req.toInput(), req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_VENDOR", "vendor", vendor.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// DeleteVendor handles deleting a vendor.
// @Summary     Delete vendor
// @Description Soft delete a vendor record
// @Tags        vendors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vendor ID"
// @Success     204 "Vendor deleted"
// @Failure     400 {object} ErrorResponse "Invalid vendor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Vendor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vendorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.vendorService.DeleteVendor(userID, vendorID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_VENDOR", "vendor", vendorID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
