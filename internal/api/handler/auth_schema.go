package handler

import "github.com/gotrek/gotrek/internal/core/domain"

// Request bodies are the form structs from internal/core/forms; only the
// response shapes live here.

type signupResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type loginResponse struct {
	Message  string         `json:"message"`
	User     domain.Session `json:"user"`
	Redirect string         `json:"redirect"`
}

type logoutResponse struct {
	Redirect string `json:"redirect"`
}

type sessionResponse struct {
	User      *domain.Session `json:"user"`
	IsLoading bool            `json:"is_loading"`
}
