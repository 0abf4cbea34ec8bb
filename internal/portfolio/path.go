package portfolio

// AccountPath is the client route of an account detail screen
func AccountPath(accountID string) string {
	return "/account/" + accountID
}
