package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for sessions and trace IDs.
// Time-ordered UUIDv7 is preferred so that session rows index well.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
