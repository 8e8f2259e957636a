package admin

// Admin is a dashboard account. Password holds the bcrypt hash and is stripped
// from every response by sanitizeAdmin.
type Admin struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Patch is a merge-patch for an account: only fields present in the request
// change. A present, non-empty password is the only field that gets rehashed.
type Patch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
