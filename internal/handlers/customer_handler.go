package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// CustomerHandler handles customer-related requests.
type CustomerHandler struct {
	customerService services.CustomerServicer
	auditService    services.AuditServicer
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService services.CustomerServicer, auditService services.AuditServicer) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, auditService: auditService}
}

// PartyRequest represents the shared request payload for creating or
// updating a customer or vendor.
type PartyRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Email        string           `json:"email" binding:"omitempty,email,max=255"`
	Phone        string           `json:"phone" binding:"max=50"`
	Address      string           `json:"address" binding:"max=500"`
	Type         models.PartyType `json:"type" binding:"omitempty,party_type"`
	PaymentTerms *int             `json:"payment_terms" binding:"omitempty,min=0,max=365"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	IsActive     *bool            `json:"is_active"`
}

func (r *PartyRequest) toInput() services.PartyInput {
	return services.PartyInput{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Type:         r.Type,
		PaymentTerms: r.PaymentTerms,
		CreditLimit:  r.CreditLimit,
	}
}

// CreateCustomer handles the creation of a new customer.
// @Summary     Create a customer
// @Description Create a new customer record
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PartyRequest true "Customer details"
// @Success     201 {object} models.Customer "Customer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
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

	customer, err := h.customerService.CreateCustomer(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CUSTOMER", "customer", customer.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// GetCustomers handles listing customers for the authenticated user.
// @Summary     Get customers
// @Description Get a paginated list of customers
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only include active customers"
// @Param       page        query int  false "Page number (default 1)"
// @Param       page_size   query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Customer] "Paginated customers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers [get]
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
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

	result, err := h.customerService.GetUserCustomers(userID, page, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCustomer handles retrieving a specific customer.
// @Summary     Get customer by ID
// @Description Get a specific customer by ID
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     200 {object} models.Customer "Customer details"
// @Failure     400 {object} ErrorResponse "Invalid customer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	customerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	customer, err := h.customerService.GetCustomerByID(userID, customerID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// UpdateCustomer handles updating an existing customer.
// @Summary     Update customer
// @Description Update a customer's details
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Customer ID"
// @Param       request body PartyRequest true "Updated customer details"
// @Success     200 {object} models.Customer "Updated customer"
// @Failure     400 {object} ErrorResponse "Invalid input or customer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	customerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	customer, err := h.customerService.UpdateCustomer(userID, customerID, req.toInput(), req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CUSTOMER", "customer", customer.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// DeleteCustomer handles deleting a customer.
// @Summary     Delete customer
// @Description Soft delete a customer record
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     204 "Customer deleted"
// @Failure     400 {object} ErrorResponse "Invalid customer ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	customerID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.customerService.DeleteCustomer(userID, customerID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CUSTOMER", "customer", customerID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
