package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sajad-git/election/api/models"
	"github.com/sajad-git/election/api/transport"
	"github.com/sajad-git/election/logging"
	"github.com/sajad-git/election/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	configStorage storage.ElectionConfigStorage
	ballotStorage storage.BallotStorage
}

func NewAdminController(configStorage storage.ElectionConfigStorage, ballotStorage storage.BallotStorage) *AdminController {
	return &AdminController{
		configStorage: configStorage,
		ballotStorage: ballotStorage,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/admin/login", c.login)

	group := engine.Group("/api/admin", transport.AdminAuthMiddleware(c.configStorage))

	group.GET("/config", c.getConfig)
	group.PUT("/candidates", c.updateCandidates)
	group.PUT("/file", c.renameTargetFile)
	group.PUT("/active", c.setActive)
	group.GET("/files", c.listFiles)
	group.GET("/files/:name", c.downloadFile)
	group.GET("/export", c.exportAll)
}

// login godoc
// @Summary Check the admin password
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Admin password"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.AdminLoginResponse
// @Router /api/admin/login [post]
func (c *AdminController) login(g *gin.Context) {
	var req models.AdminLoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load config for login: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load election config"})
		return
	}

	if req.Password != config.AdminPassword {
		logging.Log.Warnf("ADMIN: failed login attempt")
		g.JSON(http.StatusUnauthorized, &models.AdminLoginResponse{Granted: false})
		return
	}
	g.JSON(http.StatusOK, &models.AdminLoginResponse{Granted: true})
}

// @Security AdminPassword
// getConfig godoc
// @Summary Read the election configuration
// @Tags admin
// @Produce json
// @Success 200 {object} models.ElectionConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/config [get]
func (c *AdminController) getConfig(g *gin.Context) {
	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load config: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformElectionConfigFromStorage(config))
}

// @Security AdminPassword
// updateCandidates godoc
// @Summary Replace the candidate list
// @Description Replaces the list wholesale; empty entries are dropped, order is preserved
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.UpdateCandidatesRequest true "New candidate list"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/candidates [put]
func (c *AdminController) updateCandidates(g *gin.Context) {
	var req models.UpdateCandidatesRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	candidates := make([]string, 0, len(req.Candidates))
	for _, candidate := range req.Candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		g.JSON(http.StatusBadRequest, gin.H{"error": "candidate list cannot be empty"})
		return
	}

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load config: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.Candidates = candidates
	if err := c.configStorage.Save(config); err != nil {
		logging.Log.Errorf("ADMIN: failed to save candidates: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: replaced candidate list (%d entries)", len(candidates))
	g.JSON(http.StatusOK, &models.MessageResponse{Message: models.NoticeCandidatesUpdated})
}

// @Security AdminPassword
// renameTargetFile godoc
// @Summary Change the active ballot table file
// @Description Subsequent votes go to the new table; existing tables are left untouched
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.RenameFileRequest true "New file name"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/file [put]
func (c *AdminController) renameTargetFile(g *gin.Context) {
	var req models.RenameFileRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.FileName == "" {
		g.JSON(http.StatusBadRequest, gin.H{"error": "missing file name"})
		return
	}
	if req.FileName != filepath.Base(req.FileName) || !strings.HasSuffix(req.FileName, ".xlsx") {
		g.JSON(http.StatusBadRequest, gin.H{"error": "file name must be a plain .xlsx name"})
		return
	}

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load config: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.CurrentFile = req.FileName
	if err := c.configStorage.Save(config); err != nil {
		logging.Log.Errorf("ADMIN: failed to save current file: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: changed current file to %s", req.FileName)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: models.NoticeFileRenamed})
}

// @Security AdminPassword
// setActive godoc
// @Summary Toggle election activity
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.SetActiveRequest true "Active flag"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/active [put]
func (c *AdminController) setActive(g *gin.Context) {
	var req models.SetActiveRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, gin.H{"error": "missing active flag"})
		return
	}

	config, err := c.configStorage.Load()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to load config: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	config.IsActive = *req.Active
	if err := c.configStorage.Save(config); err != nil {
		logging.Log.Errorf("ADMIN: failed to save active flag: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: set election active=%t", *req.Active)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: models.NoticeActiveUpdated})
}

// @Security AdminPassword
// listFiles godoc
// @Summary List persisted ballot table files
// @Tags admin
// @Produce json
// @Success 200 {object} models.FileListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/files [get]
func (c *AdminController) listFiles(g *gin.Context) {
	files, err := c.ballotStorage.ListFiles()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list vote files: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logging.Log.Infof("ADMIN: listed %d vote files", len(files))
	g.JSON(http.StatusOK, &models.FileListResponse{Files: files})
}

// @Security AdminPassword
// downloadFile godoc
// @Summary Download one ballot table file
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name path string true "File name"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/files/{name} [get]
func (c *AdminController) downloadFile(g *gin.Context) {
	name := g.Param("name")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".xlsx") {
		g.JSON(http.StatusBadRequest, gin.H{"error": "file name must be a plain .xlsx name"})
		return
	}

	data, err := c.ballotStorage.ReadFile(name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			g.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("vote file not found: %s", name)})
			return
		}
		logging.Log.Errorf("ADMIN: failed to read vote file %s: %v", name, err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: downloaded vote file %s", name)
	g.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	g.Data(http.StatusOK, xlsxContentType, data)
}

// @Security AdminPassword
// exportAll godoc
// @Summary Download all ballot table files as one zip archive
// @Tags admin
// @Produce application/zip
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/export [get]
func (c *AdminController) exportAll(g *gin.Context) {
	files, err := c.ballotStorage.ListFiles()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list vote files: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(files) == 0 {
		g.JSON(http.StatusNotFound, gin.H{"error": "no vote files to export"})
		return
	}

	archive, err := c.ballotStorage.ExportAll()
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to build export archive: %v", err)
		g.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Log.Infof("ADMIN: exported %d vote files", len(files))
	g.Header("Content-Disposition", `attachment; filename="all_vote_files.zip"`)
	g.Data(http.StatusOK, "application/zip", archive)
}
