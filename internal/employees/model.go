package employees

import "time"

// Employee represents an employee record. The JSON tags are the wire
// contract shared with the persisted schema.
type Employee struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	CreatedAt time.Time `json:"created_at"`
}

// DeleteResult confirms a completed delete.
type DeleteResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
