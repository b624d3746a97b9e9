package domain

// Email is a composed transactional message handed to the email
// provider.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}
