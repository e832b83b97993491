package utils

import (
	"github.com/google/uuid"
)

func GenerateTicketNumber() uuid.UUID {
	return uuid.New()
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
