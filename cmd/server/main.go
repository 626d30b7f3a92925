package main

import (
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"docchat/config"
	"docchat/database"
	"docchat/router"

	"docchat/pkg/ai"
	"docchat/pkg/answer"
	"docchat/pkg/chunker"
	"docchat/pkg/index"
	"docchat/pkg/parser"
	"docchat/pkg/session"

	chatCtrlImp "docchat/pkg/chat/controllerImp"
	docCtrlImp "docchat/pkg/document/controllerImp"
	docRepoImp "docchat/pkg/document/repositoryImp"
	docSvcImp "docchat/pkg/document/serviceImp"
	healthCtrlImp "docchat/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[cfg] %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("[cfg] create upload dir: %v", err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Collaborators
	var emb ai.Embedder
	var gen ai.Generator
	if cfg.MockAI {
		log.Printf("[ai] AI_MOCK=true, using in-process fakes")
		emb = ai.NewMockEmbedder()
		gen = ai.NewMockGenerator()
	} else {
		emb = ai.NewEmbedClient(cfg.EmbedEndpoint, cfg.EmbedAPIKey, cfg.EmbedModel)
		gen = ai.NewGenClient(cfg.GenEndpoint, cfg.GenAPIKey, cfg.GenModel)
	}

	// 4) Retrieval + answering
	cache := index.NewCache(index.NewBuilder(emb))
	engine := answer.NewEngine(cache, gen, cfg.TopK)

	// 5) Documents
	docRepo := docRepoImp.New(db)
	docSvc := docSvcImp.New(docRepo, parser.NewPDF(), chunker.New(cfg.ChunkSize, cfg.ChunkOverlap), cfg.UploadDir)

	// 6) Sessions
	mgr := session.NewManager(docSvc, engine, cfg.QuestionLimit, cfg.QuestionWindow, cfg.MaxFailures)

	// 7) Controllers
	uploadCtrl := docCtrlImp.New(docSvc)
	chatCtrl := chatCtrlImp.New(mgr)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(e, uploadCtrl, chatCtrl, hCtrl, router.ChatPageLimit{
		Requests: cfg.ChatPageLimit,
		Window:   cfg.ChatPageWindow,
	})

	// 9) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
