package dto

import "rite-api/modules/auth/entity"

// GoogleLoginRequest carries the authorization code from the OAuth redirect.
type GoogleLoginRequest struct {
	Code string `json:"code"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *entity.User `json:"user"`
}
