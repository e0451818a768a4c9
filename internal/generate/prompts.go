package generate

import (
	"fmt"
	"strings"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

// The model is told to return raw JSON with no fences; llm.DecodeObject and
// llm.DecodeList still clean up responses that ignore the instruction.
const strictJSONRules = "Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Do NOT use ```json or any Markdown.\n" +
	"Do NOT include any text before or after the JSON.\n"

// buildProfilePrompt constructs the tier-one prompt for a single user profile.
func buildProfilePrompt() string {
	var b strings.Builder
	b.WriteString("Generate a realistic user profile for financial data analysis.\n")
	b.WriteString("Output a single JSON object with these fields:\n")
	b.WriteString("- \"name\": string, a realistic full name\n")
	fmt.Fprintf(&b, "- \"age\": integer between %d and %d\n", domain.MinAge, domain.MaxAge)
	b.WriteString("- \"occupation\": string\n")
	fmt.Fprintf(&b, "- \"income_bracket\": string, exactly one of: %s\n", quotedList(domain.IncomeBrackets))
	b.WriteString("Make it realistic and varied.\n\n")
	b.WriteString(strictJSONRules)
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n")
	return b.String()
}

// buildAccountsPrompt constructs the tier-two prompt, parameterized by the
// generated profile's income bracket.
func buildAccountsPrompt(profile domain.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate realistic bank account data for a person with income %s.\n", profile.IncomeBracket)
	fmt.Fprintf(&b, "Output a JSON array of %d to %d account objects, each with these fields:\n",
		domain.MinAccounts, domain.MaxAccounts)
	fmt.Fprintf(&b, "- \"account_type\": string, exactly one of: %s\n", quotedList(domain.AccountTypes))
	b.WriteString("- \"institution\": string, a realistic bank name\n")
	b.WriteString("- \"current_balance\": number, realistic for the income and account type\n\n")
	b.WriteString(strictJSONRules)
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String()
}

// buildTransactionsPrompt constructs the tier-three prompt, parameterized by
// one account and the owning profile.
func buildTransactionsPrompt(account domain.Account, profile domain.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 2 years of realistic transactions for a %s account with current balance $%.2f,\n",
		account.AccountType, account.CurrentBalance)
	fmt.Fprintf(&b, "owned by a person with income %s.\n", profile.IncomeBracket)
	b.WriteString("Output a JSON array of transaction objects, each with these fields:\n")
	fmt.Fprintf(&b, "- \"date\": string, ISO format \"YYYY-MM-DD\", between %s and %s\n",
		domain.TransactionWindowStart.Format("2006-01-02"),
		domain.TransactionWindowEnd.Format("2006-01-02"))
	b.WriteString("- \"amount\": number (negative for debits, positive for credits)\n")
	b.WriteString("- \"category\": string\n")
	b.WriteString("- \"merchant_name\": string\n")
	b.WriteString("- \"transaction_type\": string, \"debit\" or \"credit\"\n")
	b.WriteString("Make transactions realistic based on account type and balance.\n\n")
	b.WriteString(strictJSONRules)
	b.WriteString("Output must begin with \"[\" and end with \"]\".\n")
	return b.String()
}

func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
