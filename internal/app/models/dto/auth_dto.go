package dto

import "github.com/yigit/studentdesk/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@studentdesk.app"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"28800"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token    TokenResponse   `json:"token"`
	Identity models.Identity `json:"identity"`
}

// NavigationResponse lists the sections the caller may open
type NavigationResponse struct {
	Identity  models.Identity `json:"identity"`
	Sections  []string        `json:"sections" example:"dashboard,directory"`
	Dashboard string          `json:"dashboard" example:"full" enums:"full,profile-only,none"`
}
