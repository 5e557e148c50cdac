package models

// Email is an outbound plain-text message
type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
}
