package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/entity"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/domain/repository"
	pkgjwt "github.com/Antonio-JDev/sistema-S3E-connect/pkg/jwt"
)

// JWTConfig parâmetros de emissão de token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica usuários e emite JWT. O núcleo do estoque recebe o
// criado_por já resolvido e não reconfere permissões.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login valida as credenciais e devolve o token com o perfil no claim.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Senha == "" {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Ativo {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, strconv.FormatInt(usuario.ID, 10), usuario.Perfil, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Nome: usuario.Nome, Perfil: usuario.Perfil}, nil
}

// Registrar cria um usuário com senha em bcrypt. Perfil vazio vira almoxarife.
func (uc *AuthUseCase) Registrar(_ context.Context, in dto.RegistrarUsuarioRequest) (*entity.Usuario, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Nome == "" || email == "" || len(in.Senha) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	perfil := in.Perfil
	switch perfil {
	case entity.PerfilAdmin, entity.PerfilAlmoxarife, entity.PerfilEngenheiro:
	case "":
		perfil = entity.PerfilAlmoxarife
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &entity.Usuario{
		Nome:      in.Nome,
		Email:     email,
		SenhaHash: string(hash),
		Perfil:    perfil,
		Ativo:     true,
		CriadoEm:  time.Now(),
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}
