package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUsuarioNotFound    = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("e-mail já cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
	ErrInvariantViolation = errors.New("violação de invariante do estoque")
)

// EstoqueInsuficienteError identifica o item cuja disponibilidade barrou a saída.
// errors.Is(err, ErrInsufficientStock) continua funcionando via Unwrap.
type EstoqueInsuficienteError struct {
	ItemID int64
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("estoque insuficiente para o item %d", e.ItemID)
}

func (e *EstoqueInsuficienteError) Unwrap() error { return ErrInsufficientStock }
