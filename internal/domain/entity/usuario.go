package entity

import "time"

// Perfis de acesso.
const (
	PerfilAdmin      = "admin"
	PerfilAlmoxarife = "almoxarife"
	PerfilEngenheiro = "engenheiro"
)

// Usuario é o operador autenticado; o núcleo do estoque só usa o ID como criado_por.
type Usuario struct {
	ID        int64
	Nome      string
	Email     string
	SenhaHash string
	Perfil    string
	Ativo     bool
	CriadoEm  time.Time
}
