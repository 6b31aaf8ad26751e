package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shopspring/decimal"
)

// knownCategories are the market categories the service scans. The
// multi-select keeps custom entries from config even if they are not
// listed here.
var knownCategories = []string{
	"crypto",
	"financials",
	"economics",
	"politics",
	"tech",
	"weather",
}

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, NVDA, TSLA):",
		Help:    "Please enter a valid stock ticker symbol for analysis",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := val.(string)
		str = strings.TrimSpace(strings.ToUpper(str))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		matched, _ := regexp.MatchString(`^[A-Z0-9.-]+$`, str)
		if !matched {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForCategories prompts for the market categories to scan.
func PromptForCategories(current []string) ([]string, error) {
	options := append([]string(nil), knownCategories...)
	for _, c := range current {
		if !containsString(options, c) {
			options = append(options, c)
		}
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select market categories to scan:",
		Options: options,
		Help:    "Use space to select, enter to confirm. At least one category is required.",
		Default: current,
	}

	err := survey.AskOne(prompt, &selected, survey.WithValidator(func(val interface{}) error {
		answers, ok := val.([]survey.OptionAnswer)
		if !ok {
			return fmt.Errorf("invalid selection type")
		}
		if len(answers) == 0 {
			return fmt.Errorf("you must select at least one category")
		}
		return nil
	}))

	if err != nil {
		return nil, err
	}
	return selected, nil
}

// PromptForBankroll prompts for the bankroll used for position sizing.
func PromptForBankroll(current decimal.Decimal) (decimal.Decimal, error) {
	var input string
	prompt := &survey.Input{
		Message: "Bankroll in dollars for position sizing:",
		Help:    "Position sizes are capped at 20% of this amount per trade.",
		Default: current.StringFixed(2),
	}

	err := survey.AskOne(prompt, &input, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		v, err := decimal.NewFromString(str)
		if err != nil {
			return fmt.Errorf("enter a dollar amount, e.g. 1000 or 250.50")
		}
		if v.IsNegative() {
			return fmt.Errorf("bankroll must not be negative")
		}
		return nil
	}))

	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.TrimSpace(input))
}

// PromptForOnly0DTE asks whether to restrict scans to contracts
// expiring today.
func PromptForOnly0DTE(current bool) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: "Restrict to 0DTE contracts (expiring today)?",
		Default: current,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// PromptForAPIKey prompts for the service API key without echoing it.
func PromptForAPIKey() (string, error) {
	var key string
	prompt := &survey.Password{
		Message: "Service API key:",
		Help:    "Leave empty to cancel. The key is kept for this session only.",
	}

	err := survey.AskOne(prompt, &key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
