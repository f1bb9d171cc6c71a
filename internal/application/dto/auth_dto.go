package dto

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// RegistrarUsuarioRequest cadastro de usuário (somente admin).
type RegistrarUsuarioRequest struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Perfil string `json:"perfil"`
}

// LoginResponse token emitido e dados básicos do usuário.
type LoginResponse struct {
	Token  string `json:"token"`
	Nome   string `json:"nome"`
	Perfil string `json:"perfil"`
}
