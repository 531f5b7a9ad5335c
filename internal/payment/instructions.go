package payment

import "strings"

const (
	MethodBankTransfer = "Bank Transfer"

	// ReceiptReminder closes every order message.
	ReceiptReminder = "Please send payment receipt after transfer"
)

// BankDetails is static configuration; nothing about it is computed per order.
type BankDetails struct {
	AccountNumber string
	AccountName   string
	Bank          string
	Branch        string
}

func DefaultBankDetails() BankDetails {
	return BankDetails{
		AccountNumber: "217200140028669",
		AccountName:   "D T T Edirisingha",
		Bank:          "Peoples Bank",
		Branch:        "Mahara",
	}
}

var InstructionMap = map[string][]string{
	MethodBankTransfer: {
		"Account Number: {{account_number}}",
		"Account Name: {{account_name}}",
		"Bank: {{bank}}",
		"Branch: {{branch}}",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Contact us for payment instructions",
	}
}

// Lines renders the bank-transfer block with these details filled in.
func (b BankDetails) Lines() []string {
	return InjectVariables(GetInstructions(MethodBankTransfer), InstructionVars{
		"account_number": b.AccountNumber,
		"account_name":   b.AccountName,
		"bank":           b.Bank,
		"branch":         b.Branch,
	})
}

type InstructionVars map[string]string

func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
