package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minOTPCode = 1000
	maxOTPCode = 9999
)

// RandomCodeGenerator implements domain.CodeGenerator with a uniform draw
// over [1000, 9999]
type RandomCodeGenerator struct{}

// NewCodeGenerator creates a new code generator
func NewCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

// Generate implements domain.CodeGenerator
func (g *RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxOTPCode-minOTPCode+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", minOTPCode+n.Int64()), nil
}
