package model

// GenerateRequest carries the answers collected from the user.
type GenerateRequest struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Symbols   bool
}

// GenerateResponse represents a generated password.
// Hash is empty unless hashing is enabled.
type GenerateResponse struct {
	Password string
	Length   int
	Hash     string
}
