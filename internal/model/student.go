package model

// Student is a persisted student record.
// It carries no persistence tags so it can be shared across layers.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
	Grade string `json:"grade"`
}
