package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores padrão quando page/limit não foram informados.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 50
	}
}

// Offset calcula o deslocamento a partir da página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
