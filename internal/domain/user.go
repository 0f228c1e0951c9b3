package domain

// User carries the contact data notification payloads need. Accounts are
// managed by the identity provider upstream of this service.
type User struct {
	ID    string
	Name  string
	Email string
}
