package assistant

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/shahan-erptechnicals/accu-chat/internal/errors"
	"github.com/shahan-erptechnicals/accu-chat/internal/logger"
	"github.com/shahan-erptechnicals/accu-chat/internal/models"
	"github.com/shahan-erptechnicals/accu-chat/internal/pagination"
	"github.com/shahan-erptechnicals/accu-chat/internal/services"
)

// apologyResponse is returned verbatim whenever the model cannot be reached.
// The user's message is still persisted so the conversation stays complete.
const apologyResponse = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

// fallbackResponse replaces an empty reply, which can happen when the model
// emits an action envelope with a blank or missing response field.
const fallbackResponse = "I didn't quite catch that. Could you rephrase?"

const recentTransactionLimit = 5

// Result is the outcome of dispatching one chat message.
type Result struct {
	Response        string `json:"response"`
	ActionPerformed bool   `json:"action_performed"`
	ActionType      string `json:"action_type,omitempty"`
	ConversationID  string `json:"conversation_id"`
}

// Dispatcher routes a chat message through the model and executes at most one
// structured action on behalf of the calling user.
type Dispatcher struct {
	completer     Completer
	extractor     ReceiptExtractor
	accounts      services.AccountServicer
	categories    services.CategoryServicer
	customers     services.CustomerServicer
	vendors       services.VendorServicer
	transactions  services.TransactionServicer
	budgets       services.BudgetServicer
	conversations services.ConversationServicer
}

// NewDispatcher wires a dispatcher over the given completer and services.
// The extractor may be nil when receipt handling is disabled.
func NewDispatcher(
	completer Completer,
	extractor ReceiptExtractor,
	accounts services.AccountServicer,
	categories services.CategoryServicer,
	customers services.CustomerServicer,
	vendors services.VendorServicer,
	transactions services.TransactionServicer,
	budgets services.BudgetServicer,
	conversations services.ConversationServicer,
) *Dispatcher {
	return &Dispatcher{
		completer:     completer,
		extractor:     extractor,
		accounts:      accounts,
		categories:    categories,
		customers:     customers,
		vendors:       vendors,
		transactions:  transactions,
		budgets:       budgets,
		conversations: conversations,
	}
}

// HandleMessage runs the full dispatch pipeline: resolve the conversation,
// persist the user's message, query the model with the user's book context,
// execute a structured action if the model proposed one, and persist the
// assistant's reply. Both messages are persisted even when the model fails.
func (d *Dispatcher) HandleMessage(ctx context.Context, userID string, conversationID *string, message string, attachments []Attachment) (*Result, error) {
	log := logger.Get()

	conversation, err := d.conversations.EnsureConversation(userID, conversationID, message)
	if err != nil {
		return nil, err
	}

	if _, err := d.conversations.AppendMessage(conversation.ID, models.MessageRoleUser, message); err != nil {
		return nil, err
	}

	prompt := message
	if d.extractor != nil {
		for _, attachment := range attachments {
			extracted, err := d.extractor.Extract(ctx, attachment)
			if err != nil {
				log.Warnw("receipt extraction failed", "filename", attachment.Filename, "error", err)
				continue
			}
			prompt += "\n\n[Attached receipt: " + extracted + "]"
		}
	}

	bctx, err := d.loadBookContext(userID)
	if err != nil {
		return nil, err
	}

	result := &Result{ConversationID: conversation.ID}

	raw, err := d.completer.Complete(ctx, buildSystemPrompt(bctx), prompt)
	if err != nil {
		log.Warnw("model completion failed", "conversation_id", conversation.ID, "error", err)
		result.Response = apologyResponse
	} else if action, ok := ParseAction(raw); ok {
		result.Response, result.ActionPerformed = d.executeAction(userID, conversation.ID, bctx, action)
		if result.ActionPerformed {
			result.ActionType = string(action.Kind)
		}
	} else {
		result.Response = strings.TrimSpace(raw)
	}

	// Never persist an empty assistant message.
	if result.Response == "" {
		result.Response = fallbackResponse
	}

	if _, err := d.conversations.AppendMessage(conversation.ID, models.MessageRoleAssistant, result.Response); err != nil {
		return nil, err
	}

	return result, nil
}

func (d *Dispatcher) loadBookContext(userID string) (*BookContext, error) {
	page := pagination.PageRequest{Page: 1, PageSize: contextListLimit}

	accounts, err := d.accounts.GetUserAccounts(userID, page)
	if err != nil {
		return nil, err
	}
	categories, err := d.categories.GetUserCategories(userID, page)
	if err != nil {
		return nil, err
	}
	customers, err := d.customers.GetUserCustomers(userID, page, true)
	if err != nil {
		return nil, err
	}
	vendors, err := d.vendors.GetUserVendors(userID, page, true)
	if err != nil {
		return nil, err
	}
	recent, err := d.transactions.GetRecentTransactions(userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	return &BookContext{
		Accounts:     accounts.Data,
		Categories:   categories.Data,
		Customers:    customers.Data,
		Vendors:      vendors.Data,
		Transactions: recent,
	}, nil
}

// executeAction performs at most one persistence call for the parsed action.
// It returns the user-facing response text and whether a write happened.
// Failures never surface as errors to the pipeline; they become a reply that
// names the problem so the user can rephrase.
func (d *Dispatcher) executeAction(userID, conversationID string, bctx *BookContext, action *Action) (string, bool) {
	switch action.Kind {
	case ActionCreateTransaction:
		if action.CreateTransaction == nil {
			return action.Response, false
		}
		return d.createTransaction(userID, conversationID, bctx, action.CreateTransaction)
	case ActionUpdateTransaction:
		if action.UpdateTransaction == nil {
			return action.Response, false
		}
		return d.updateTransaction(userID, action.UpdateTransaction)
	case ActionCreateBudget:
		if action.CreateBudget == nil {
			return action.Response, false
		}
		return d.createBudget(userID, action.CreateBudget)
	case ActionCreateCategory:
		if action.CreateCategory == nil {
			return action.Response, false
		}
		return d.createCategory(userID, action.CreateCategory)
	case ActionCreateAccount:
		if action.CreateAccount == nil {
			return action.Response, false
		}
		return d.createAccount(userID, action.CreateAccount)
	case ActionCreateCustomer:
		if action.CreateCustomer == nil {
			return action.Response, false
		}
		return d.createCustomer(userID, action.CreateCustomer)
	case ActionCreateVendor:
		if action.CreateVendor == nil {
			return action.Response, false
		}
		return d.createVendor(userID, action.CreateVendor)
	default:
		// Unknown action kind: echo the model's text, perform nothing.
		return action.Response, false
	}
}

func (d *Dispatcher) createTransaction(userID, conversationID string, bctx *BookContext, data *TransactionData) (string, bool) {
	if data.Amount.IsZero() {
		return actionFailure(apperrors.ErrZeroAmount), false
	}

	accountID := data.AccountID
	if accountID == "" {
		accountID = defaultAccountID(bctx)
	}
	if accountID == "" {
		return "I couldn't record that: no account was specified and no default account exists.", false
	}

	date := parseDate(data.Date)
	status := models.TransactionStatus(data.Status)
	if status == "" {
		status = models.TransactionStatusPending
	}

	tx, err := d.transactions.CreateTransaction(userID, services.TransactionInput{
		AccountID:      accountID,
		CategoryID:     data.CategoryID,
		CustomerID:     data.CustomerID,
		VendorID:       data.VendorID,
		ConversationID: &conversationID,
		Amount:         data.Amount,
		Description:    data.Description,
		Date:           date,
		Status:         status,
	})
	if err != nil {
		return actionFailure(err), false
	}

	kind := "income"
	if tx.Amount.IsNegative() {
		kind = "expense"
	}
	return "Recorded " + kind + " of " + tx.Amount.Abs().StringFixed(2) + " for \"" + tx.Description + "\".", true
}

func (d *Dispatcher) updateTransaction(userID string, data *TransactionUpdateData) (string, bool) {
	update := services.TransactionUpdate{
		AccountID:   data.AccountID,
		CategoryID:  data.CategoryID,
		Amount:      data.Amount,
		Description: data.Description,
	}
	if data.Date != nil {
		date := parseDate(*data.Date)
		update.Date = &date
	}
	if data.Status != nil {
		status := models.TransactionStatus(*data.Status)
		update.Status = &status
	}

	tx, err := d.transactions.UpdateTransaction(userID, data.ID, update)
	if err != nil {
		return actionFailure(err), false
	}
	return "Updated the transaction \"" + tx.Description + "\" to " + tx.Amount.StringFixed(2) + ".", true
}

func (d *Dispatcher) createBudget(userID string, data *BudgetData) (string, bool) {
	period := models.BudgetPeriod(data.Period)
	if period == "" {
		period = models.BudgetPeriodMonthly
	}
	start := parseDate(data.StartDate)
	end := parseDate(data.EndDate)
	if end.Before(start) {
		end = periodEnd(start, period)
	}

	budget, err := d.budgets.CreateBudget(userID, data.Name, data.Amount, period, start, end, data.CategoryID, data.AccountID)
	if err != nil {
		return actionFailure(err), false
	}
	return "Created the " + string(budget.Period) + " budget \"" + budget.Name + "\" of " + budget.Amount.StringFixed(2) + ".", true
}

func (d *Dispatcher) createCategory(userID string, data *CategoryData) (string, bool) {
	color := data.Color
	if color == "" {
		color = "#6B7280"
	}
	category, err := d.categories.CreateCategory(userID, data.Name, color, data.Description)
	if err != nil {
		return actionFailure(err), false
	}
	return "Created the category \"" + category.Name + "\".", true
}

func (d *Dispatcher) createAccount(userID string, data *AccountData) (string, bool) {
	account, err := d.accounts.CreateAccount(userID, data.Name, data.Code, models.AccountType(data.Type), data.Description, nil)
	if err != nil {
		return actionFailure(err), false
	}
	return "Created the " + string(account.Type) + " account \"" + account.Name + "\" with code " + account.Code + ".", true
}

func (d *Dispatcher) createCustomer(userID string, data *PartyData) (string, bool) {
	customer, err := d.customers.CreateCustomer(userID, partyInput(data))
	if err != nil {
		return actionFailure(err), false
	}
	return "Added the customer \"" + customer.Name + "\".", true
}

func (d *Dispatcher) createVendor(userID string, data *PartyData) (string, bool) {
	vendor, err := d.vendors.CreateVendor(userID, partyInput(data))
	if err != nil {
		return actionFailure(err), false
	}
	return "Added the vendor \"" + vendor.Name + "\".", true
}

func partyInput(data *PartyData) services.PartyInput {
	partyType := models.PartyType(data.Type)
	if partyType == "" {
		partyType = models.PartyTypeIndividual
	}
	return services.PartyInput{
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Address:      data.Address,
		Type:         partyType,
		PaymentTerms: data.PaymentTerms,
		CreditLimit:  data.CreditLimit,
	}
}

// actionFailure turns a service error into a reply the user can act on.
func actionFailure(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return "I couldn't complete that action: " + appErr.Message + "."
	}
	return "I couldn't complete that action. Please check the details and try again."
}

// defaultAccountID picks the Cash account when the model omits an account,
// falling back to the user's first account.
func defaultAccountID(bctx *BookContext) string {
	for _, a := range bctx.Accounts {
		if strings.EqualFold(a.Name, "Cash") {
			return a.ID
		}
	}
	if len(bctx.Accounts) > 0 {
		return bctx.Accounts[0].ID
	}
	return ""
}

// parseDate accepts YYYY-MM-DD, defaulting to today on empty or malformed
// input so a sloppy model reply still produces a usable record.
func parseDate(s string) time.Time {
	if s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func periodEnd(start time.Time, period models.BudgetPeriod) time.Time {
	switch period {
	case models.BudgetPeriodQuarterly:
		return start.AddDate(0, 3, -1)
	case models.BudgetPeriodYearly:
		return start.AddDate(1, 0, -1)
	default:
		return start.AddDate(0, 1, -1)
	}
}
