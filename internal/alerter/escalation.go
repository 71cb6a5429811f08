package alerter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/netspec/prtg-reporter/internal/types"
)

// Subsystems that can fail a run
const (
	ServicePRTG     = "PRTG"
	ServiceOpsgenie = "Opsgenie"
)

// FailureMessage formats the chat notice for a failed run. Upstream status
// failures show the code and reason; anything else shows the error text.
func FailureMessage(title, service string, err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\"%s\" was unable to run because of %s %s API error.", title, article(service), service)

	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(&b, "\n\nStatus Code: %d\n\nReason: %s", apiErr.StatusCode, apiErr.Reason)
	} else if err != nil {
		fmt.Fprintf(&b, "\n\nError: %s", err)
	}
	return b.String()
}

func article(word string) string {
	if word != "" && strings.ContainsRune("AEIOUaeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
