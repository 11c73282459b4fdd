package user

type User struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// sanitizeUser strips the password hash before a user leaves the API.
func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
