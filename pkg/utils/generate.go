package utils

import (
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
)

// ==================== TICKET TOKENS ====================

func GenerateTicketID() uuid.UUID {
	return uuid.New()
}

// GenerateBarcode returns the display token printed on a ticket.
// Format: TKT-<22 char base57 uuid>
func GenerateBarcode() string {
	return "TKT-" + shortuuid.New()
}
