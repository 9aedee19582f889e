package models

import "github.com/sajad-git/election/storage"

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Granted bool `json:"granted"`
}

// ElectionConfigResponse mirrors the persisted configuration without the
// admin password.
type ElectionConfigResponse struct {
	Candidates  []string `json:"candidates"`
	CurrentFile string   `json:"currentFile"`
	IsActive    bool     `json:"isActive"`
}

func TransformElectionConfigFromStorage(config *storage.ElectionConfig) ElectionConfigResponse {
	return ElectionConfigResponse{
		Candidates:  config.Candidates,
		CurrentFile: config.CurrentFile,
		IsActive:    config.IsActive,
	}
}

type UpdateCandidatesRequest struct {
	Candidates []string `json:"candidates"`
}

type RenameFileRequest struct {
	FileName string `json:"fileName"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FileListResponse struct {
	Files []string `json:"files"`
}
