package entity

// Status de obra.
const (
	ObraStatusAtiva     = "ativa"
	ObraStatusPausada   = "pausada"
	ObraStatusConcluida = "concluida"
)

// Obra é o projeto que consome material via saídas.
type Obra struct {
	ID          int64
	Codigo      string // único
	Nome        string
	Cliente     string
	Responsavel string
	Status      string
}
