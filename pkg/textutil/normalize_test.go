package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	casos := map[string]string{
		"LÂMPADA LED 9W":     "lampada led 9w",
		"Eletroduto ¾\"":     "eletroduto ¾\"",
		"DISJUNTOR TRIPOLAR": "disjuntor tripolar",
		"Cabo Flexível 2,5mm²": "cabo flexivel 2,5mm²",
		"":                   "",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, Normalizar(entrada), "entrada: %s", entrada)
	}
}
