package domain

import "time"

type User struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	PasswordHash string
	// DocumentEncrypted holds the AES-GCM encrypted national document number,
	// or nil when the user never supplied one.
	DocumentEncrypted *string
	CreatedAt         time.Time
}
