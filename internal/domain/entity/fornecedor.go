package entity

// Fornecedor é o emissor das notas de entrada.
type Fornecedor struct {
	ID          int64
	RazaoSocial string
	CNPJ        string
	Contato     string
	Telefone    string
	Email       string
}
