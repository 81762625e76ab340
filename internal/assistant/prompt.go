package assistant

import (
	"fmt"
	"strings"

	"github.com/shahan-erptechnicals/accu-chat/internal/models"
)

const contextListLimit = 10

// BookContext is the slice of a user's books given to the model so that it
// can reference real record IDs when proposing an action.
type BookContext struct {
	Accounts     []models.Account
	Categories   []models.Category
	Customers    []models.Customer
	Vendors      []models.Vendor
	Transactions []models.Transaction
}

// buildSystemPrompt renders the dispatcher's system instruction. The prompt
// pins the JSON envelope format and the sign convention so replies stay
// machine-parseable.
func buildSystemPrompt(bctx *BookContext) string {
	var b strings.Builder

	b.WriteString(`You are an AI accountant for a personal bookkeeping application. You help the user record transactions, manage budgets, and keep their books organized.

When the user asks you to record or change something in their books, respond with ONLY a JSON object in this exact format, with no surrounding text or code fences:
{"action": "<ACTION_NAME>", "data": {...}, "response": "<confirmation text for the user>"}

Supported actions and their data fields:
- CREATE_TRANSACTION: {"amount": number, "description": string, "date": "YYYY-MM-DD", "account_id": string, "category_id": string or null, "customer_id": string or null, "vendor_id": string or null, "status": "pending"|"cleared"|"reconciled"}
- UPDATE_TRANSACTION: {"id": string, plus only the fields to change}
- CREATE_BUDGET: {"name": string, "amount": number, "period": "monthly"|"quarterly"|"yearly", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "category_id": string or null, "account_id": string or null}
- CREATE_CATEGORY: {"name": string, "color": "#RRGGBB", "description": string}
- CREATE_ACCOUNT: {"name": string, "code": string, "type": "asset"|"liability"|"equity"|"revenue"|"expense", "description": string}
- CREATE_CUSTOMER: {"name": string, "email": string, "phone": string, "address": string, "type": "individual"|"business"}
- CREATE_VENDOR: same fields as CREATE_CUSTOMER

Sign convention: expenses are negative amounts, income is positive. "I spent $25 on lunch" means amount -25.

Use the record IDs from the context below. If no date is given, use today's date. If no account is specified, use the Cash account. If the user is asking a question or chatting, answer in plain text with no JSON.

`)

	writeAccounts(&b, bctx.Accounts)
	writeCategories(&b, bctx.Categories)
	writeCustomers(&b, bctx.Customers)
	writeVendors(&b, bctx.Vendors)
	writeRecentTransactions(&b, bctx.Transactions)

	return b.String()
}

func writeAccounts(b *strings.Builder, accounts []models.Account) {
	b.WriteString("Accounts:\n")
	for i, a := range accounts {
		if i >= contextListLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s (%s, code %s)\n", a.ID, a.Name, a.Type, a.Code)
	}
	b.WriteString("\n")
}

func writeCategories(b *strings.Builder, categories []models.Category) {
	b.WriteString("Categories:\n")
	for i, c := range categories {
		if i >= contextListLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s\n", c.ID, c.Name)
	}
	b.WriteString("\n")
}

func writeCustomers(b *strings.Builder, customers []models.Customer) {
	if len(customers) == 0 {
		return
	}
	b.WriteString("Customers:\n")
	for i, c := range customers {
		if i >= contextListLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s\n", c.ID, c.Name)
	}
	b.WriteString("\n")
}

func writeVendors(b *strings.Builder, vendors []models.Vendor) {
	if len(vendors) == 0 {
		return
	}
	b.WriteString("Vendors:\n")
	for i, v := range vendors {
		if i >= contextListLimit {
			break
		}
		fmt.Fprintf(b, "- %s: %s\n", v.ID, v.Name)
	}
	b.WriteString("\n")
}

func writeRecentTransactions(b *strings.Builder, transactions []models.Transaction) {
	if len(transactions) == 0 {
		return
	}
	b.WriteString("Recent transactions:\n")
	for _, t := range transactions {
		line := fmt.Sprintf("- %s: %s %s on %s", t.ID, t.Description, t.Amount.StringFixed(2), t.Date.Format("2006-01-02"))
		if t.Category != nil {
			line += " (" + t.Category.Name + ")"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}
