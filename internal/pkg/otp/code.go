package otp

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// CodeGenerator produces verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeGeneratorFunc adapts a function to CodeGenerator.
type CodeGeneratorFunc func() (string, error)

// Generate calls f.
func (f CodeGeneratorFunc) Generate() (string, error) {
	return f()
}

// RandomCode draws codes uniformly from 100000-999999.
type RandomCode struct {
	reader io.Reader
}

// NewRandomCode returns a RandomCode backed by crypto/rand.
func NewRandomCode() *RandomCode {
	return &RandomCode{reader: rand.Reader}
}

// Generate returns a 6-digit code.
func (g *RandomCode) Generate() (string, error) {
	n, err := rand.Int(g.reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
