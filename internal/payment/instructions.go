package payment

import "strings"

const (
	MethodCOD      = "cod"
	MethodChapa    = "chapa"
	MethodTelebirr = "telebirr"
	MethodMpesa    = "mpesa"
)

// Placeholder keys understood by InjectVariables.
const (
	VarAmount    = "amount"
	VarAccount   = "account"
	VarReference = "reference"
)

var InstructionMap = map[string][]string{
	MethodCOD: {
		"Your order will be delivered to the address you gave the seller",
		"Prepare {{amount}} in cash for the courier",
		"Pay the courier directly and keep the receipt",
		"Quote order {{reference}} if the seller contacts you",
	},

	MethodChapa: {
		"Open the Chapa checkout or app",
		"Send {{amount}} to the merchant account {{account}}",
		"Write {{reference}} in the payment note",
		"Keep the transaction receipt until the order is completed",
	},

	MethodTelebirr: {
		"Open telebirr and choose Send Money",
		"Enter the merchant number {{account}}",
		"Send {{amount}} and write {{reference}} in the remark",
		"Keep the confirmation SMS until the order is completed",
	},

	MethodMpesa: {
		"Open M-PESA and choose Send Money",
		"Enter the merchant number {{account}}",
		"Send {{amount}} and write {{reference}} as the reason",
		"Keep the confirmation SMS until the order is completed",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Contact the store to arrange payment of {{amount}} for order {{reference}}",
	}
}

type InstructionVars map[string]string

// InjectVariables fills {{key}} placeholders. Unknown keys are left as-is.
func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}

// Instructions renders the steps a buyer follows for method.
func Instructions(method string, vars InstructionVars) []string {
	return InjectVariables(GetInstructions(method), vars)
}
