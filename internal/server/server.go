package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"importdesk/internal/api"
	"importdesk/internal/config"
	"importdesk/internal/store"
)

// Server is the HTTP server wrapping the API handler and the SQLite
// store.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer builds the server: opens the database under the data
// directory, seeds the lead time setting from the config file, and
// registers the routes.
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "importdesk.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := sqliteStore.SeedLeadTime(cfg.Business.DefaultLeadTime); err != nil {
		log.Printf("Failed to seed lead time setting: %v", err)
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    api.NewHandler(sqliteStore),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the database.
func (s *Server) Close() error {
	return s.store.Close()
}
