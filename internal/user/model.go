package user

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAbout is filled in for users who have not written anything yet.
const DefaultAbout = "This is a default about of the user."

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"emailId"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON

	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName,omitempty"`
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	PhotoURL  string   `json:"photoUrl,omitempty"`
	About     string   `json:"about,omitempty"`
	Skills    []string `json:"skills,omitempty"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
