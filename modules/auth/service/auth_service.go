package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"rite-api/core/cache"
	"rite-api/core/config"
	"rite-api/core/errors"
	"rite-api/core/logger"
	"rite-api/core/utils"
	"rite-api/modules/auth/dto"
	"rite-api/modules/auth/entity"
	"rite-api/modules/auth/repository"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthService struct {
	repo      repository.UserRepositoryInterface
	cache     cache.Cache
	oauthConf *oauth2.Config
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo repository.UserRepositoryInterface, c cache.Cache, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:  repo,
		cache: c,
		oauthConf: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		jwtSecret: cfg.JWT.Secret,
		tokenTTL:  cfg.JWT.TokenTTL,
	}
}

// ResolveIdentity maps a verified external identity onto a user row. First
// sight creates the row; repeat sight bumps last_login_at. At most one write
// either way.
func (s *AuthService) ResolveIdentity(ctx context.Context, ident entity.ExternalIdentity) (*entity.User, *errors.AppError) {
	if ident.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "external identity has no email", nil)
	}

	user, err := s.repo.GetByEmail(ctx, ident.Email)
	if err != nil {
		logger.Error("AuthService:ResolveIdentity:GetByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}

	if user == nil {
		newUser := &entity.User{Email: ident.Email}
		if ident.Name != "" {
			newUser.DisplayName = &ident.Name
		}
		created, err := s.repo.Create(ctx, newUser)
		if err != nil {
			logger.Error("AuthService:ResolveIdentity:Create:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
		}
		logger.Info("AuthService:ResolveIdentity:Created", "user_id", created.ID, "email", created.Email)
		return created, nil
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Error("AuthService:ResolveIdentity:TouchLastLogin:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update last login", err)
	}

	return user, nil
}

// LoginWithGoogle exchanges the OAuth code, resolves the identity, and
// issues a session token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.LoginResponse, *errors.AppError) {
	if req.Code == "" {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "missing authorization code", nil)
	}

	token, err := s.oauthConf.Exchange(ctx, req.Code)
	if err != nil {
		logger.Error("AuthService:LoginWithGoogle:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	ident, appErr := s.fetchGoogleIdentity(ctx, token)
	if appErr != nil {
		return nil, appErr
	}

	user, appErr := s.ResolveIdentity(ctx, *ident)
	if appErr != nil {
		return nil, appErr
	}

	accessToken, err := utils.GenerateAccessToken(s.jwtSecret, user.ID, user.Email, s.tokenTTL)
	if err != nil {
		logger.Error("AuthService:LoginWithGoogle:GenerateAccessToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session token", err)
	}

	return &dto.LoginResponse{AccessToken: accessToken, User: user}, nil
}

func (s *AuthService) fetchGoogleIdentity(ctx context.Context, token *oauth2.Token) (*entity.ExternalIdentity, *errors.AppError) {
	client := s.oauthConf.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		logger.Error("AuthService:fetchGoogleIdentity:Get:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch user info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "identity provider rejected the token", nil)
	}

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		logger.Error("AuthService:fetchGoogleIdentity:Decode:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to decode user info", err)
	}

	return &entity.ExternalIdentity{Email: info.Email, Name: info.Name}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("AuthService:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	return user, nil
}

// Logout blacklists the session token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(s.jwtSecret, tokenString)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.AddToTokenBlacklist(ctx, tokenString, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke session", err)
	}
	return nil
}
