// Package payment hands the user over to the hosted Midtrans checkout and
// waits for the redirect back. The client never talks to the provider API:
// it only redeems the snap token the order endpoint issued.
package payment

import "strings"

const (
	sandboxHost    = "https://app.sandbox.midtrans.com"
	productionHost = "https://app.midtrans.com"
)

// IsSandboxKey mirrors the widget's environment detection: sandbox client
// keys carry the SB-Mid- prefix. An empty key defaults to sandbox.
func IsSandboxKey(clientKey string) bool {
	if strings.TrimSpace(clientKey) == "" {
		return true
	}
	return strings.Contains(clientKey, "SB-Mid-")
}

// RedirectURL builds the hosted checkout URL for one payment session.
func RedirectURL(snapToken, clientKey string) string {
	host := productionHost
	if IsSandboxKey(clientKey) {
		host = sandboxHost
	}
	return host + "/snap/v2/vtweb/" + snapToken
}
