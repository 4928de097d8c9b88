package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for the users table
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`

	FirstName string   `bun:"first_name,notnull"`
	LastName  string   `bun:"last_name,nullzero"`
	Age       int      `bun:"age,nullzero"`
	Gender    string   `bun:"gender,nullzero"`
	PhotoURL  string   `bun:"photo_url,nullzero"`
	About     string   `bun:"about,nullzero"`
	Skills    []string `bun:"skills,array"`

	// Always the SHA-256 of the raw token, never the token itself
	ResetPasswordToken   *string    `bun:"reset_password_token"`
	ResetPasswordExpires *time.Time `bun:"reset_password_expires"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
