package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sajad-git/election/api/controllers"
	"github.com/sajad-git/election/api/transport"
	"github.com/sajad-git/election/logging"
	"github.com/sajad-git/election/storage"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	configStorage := &storage.FileElectionConfigStorage{
		Path: s.config.ConfigPath,
	}
	ballotStorage, err := storage.NewExcelBallotStorage(s.config.VotesDir)
	if err != nil {
		logging.Log.Errorf("failed to create ballot storage: %v", err)
		panic("failed to create ballot storage")
	}

	// Bootstrap the election config document; a corrupt document is fatal
	if _, err := configStorage.Load(); err != nil {
		logging.Log.Fatalf("failed to load election config: %v", err)
	}

	//Register controllers
	votingController := controllers.NewVotingController(configStorage, ballotStorage)
	votingController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(configStorage, ballotStorage)
	adminController.RegisterRoutes(r)

	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", s.config.Port))
	if err := r.Run(fmt.Sprintf(":%d", s.config.Port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
