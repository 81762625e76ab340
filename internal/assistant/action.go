package assistant

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ActionKind enumerates the structured operations the dispatcher may execute.
type ActionKind string

const (
	ActionCreateTransaction ActionKind = "CREATE_TRANSACTION"
	ActionUpdateTransaction ActionKind = "UPDATE_TRANSACTION"
	ActionCreateBudget      ActionKind = "CREATE_BUDGET"
	ActionCreateCategory    ActionKind = "CREATE_CATEGORY"
	ActionCreateAccount     ActionKind = "CREATE_ACCOUNT"
	ActionCreateCustomer    ActionKind = "CREATE_CUSTOMER"
	ActionCreateVendor      ActionKind = "CREATE_VENDOR"
)

// Action is a tagged variant decoded from the model's JSON reply. Exactly one
// data field matching Kind is populated; unknown kinds carry only Response.
type Action struct {
	Kind     ActionKind
	Response string

	CreateTransaction *TransactionData
	UpdateTransaction *TransactionUpdateData
	CreateBudget      *BudgetData
	CreateCategory    *CategoryData
	CreateAccount     *AccountData
	CreateCustomer    *PartyData
	CreateVendor      *PartyData
}

// TransactionData carries the fields for CREATE_TRANSACTION. The sign
// convention is the model's: negative amounts are expenses.
type TransactionData struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	AccountID   string          `json:"account_id"`
	CategoryID  *string         `json:"category_id"`
	CustomerID  *string         `json:"customer_id"`
	VendorID    *string         `json:"vendor_id"`
	Status      string          `json:"status"`
}

// TransactionUpdateData carries the fields for UPDATE_TRANSACTION.
// Absent fields leave the transaction unchanged.
type TransactionUpdateData struct {
	ID          string           `json:"id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
	AccountID   *string          `json:"account_id"`
	CategoryID  *string          `json:"category_id"`
	Status      *string          `json:"status"`
}

// BudgetData carries the fields for CREATE_BUDGET.
type BudgetData struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	CategoryID *string         `json:"category_id"`
	AccountID  *string         `json:"account_id"`
}

// CategoryData carries the fields for CREATE_CATEGORY.
type CategoryData struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// AccountData carries the fields for CREATE_ACCOUNT.
type AccountData struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PartyData carries the fields for CREATE_CUSTOMER and CREATE_VENDOR.
type PartyData struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address"`
	Type         string           `json:"type"`
	PaymentTerms *int             `json:"payment_terms"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
}

// envelope is the wire shape of a structured model reply.
type envelope struct {
	Action   string          `json:"action"`
	Data     json.RawMessage `json:"data"`
	Response string          `json:"response"`
}

// ParseAction attempts to interpret raw model text as a single structured
// action. It strips optional code-fence markup first. A false return means
// the text is a plain conversational reply, which is the common path, not an
// error. Unknown action kinds are returned with only Kind and Response set
// so the caller can echo the model's text verbatim.
func ParseAction(raw string) (*Action, bool) {
	clean := stripFences(raw)

	var env envelope
	if err := json.Unmarshal([]byte(clean), &env); err != nil {
		return nil, false
	}
	if env.Action == "" {
		return nil, false
	}

	action := &Action{
		Kind:     ActionKind(env.Action),
		Response: env.Response,
	}

	// A malformed data payload degrades to the unknown-action path: the
	// model's response text is echoed and no side effect fires.
	switch action.Kind {
	case ActionCreateTransaction:
		var data TransactionData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateTransaction = &data
	case ActionUpdateTransaction:
		var data TransactionUpdateData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.UpdateTransaction = &data
	case ActionCreateBudget:
		var data BudgetData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateBudget = &data
	case ActionCreateCategory:
		var data CategoryData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateCategory = &data
	case ActionCreateAccount:
		var data AccountData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateAccount = &data
	case ActionCreateCustomer:
		var data PartyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateCustomer = &data
	case ActionCreateVendor:
		var data PartyData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return action, true
		}
		action.CreateVendor = &data
	}

	return action, true
}

// stripFences removes triple-backtick wrappers the model sometimes adds
// despite instructions, and trims to the outermost JSON object.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
