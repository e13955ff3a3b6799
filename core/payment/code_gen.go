package payment

import (
	"crypto/rand"
	"log"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8

	// largest multiple of len(codeAlphabet) that fits a byte; higher values
	// are rejected so every character stays equally likely
	codeByteMax = 252
)

// GenerateTransactionCode produces a human-presentable code of 8 characters
// from [A-Z0-9]. The space holds 36^8 (~2.8e12) values, so collisions are
// negligible at expected volumes; the storage layer still enforces a unique
// constraint and the recorder regenerates on conflict.
func GenerateTransactionCode() string {
	code := make([]byte, 0, codeLength)
	buf := make([]byte, codeLength)
	for len(code) < codeLength {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand never fails on supported platforms
			log.Panicf("payment.GenerateTransactionCode: %v", err)
		}
		for _, b := range buf {
			if b >= codeByteMax {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(code) == codeLength {
				break
			}
		}
	}
	return string(code)
}
