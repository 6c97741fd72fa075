package models

// User is an account in the credential store. The core only references
// users by name or email; accounts are never edited or deleted.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSet is the persisted credential document.
type UserSet struct {
	Users []User `json:"users"`
}

// FindByEmail returns the user with the given email, or nil.
func (u *UserSet) FindByEmail(email string) *User {
	for i := range u.Users {
		if u.Users[i].Email == email {
			return &u.Users[i]
		}
	}
	return nil
}
