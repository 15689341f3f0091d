// launching the server, storage, kafka, workers
package appServer

import (
	"context"
	"crypto/tls"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nrandle/image-downloader/config"
	"github.com/nrandle/image-downloader/internal/database"
	"github.com/nrandle/image-downloader/internal/pkg/fetcher"
	"github.com/nrandle/image-downloader/internal/pkg/kafka"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
	"github.com/nrandle/image-downloader/internal/pkg/storage"
	"github.com/nrandle/image-downloader/internal/service"
	"github.com/nrandle/image-downloader/internal/transport"
	"github.com/nrandle/image-downloader/internal/worker"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	fileStorage := storage.NewFileStorage(cfg.App.StorageDir)
	for _, dir := range []string{"uploads", "downloads", "sessions"} {
		if err := fileStorage.EnsureDir(dir); err != nil {
			logrus.Fatalf("failed to create %s dir: %s", dir, err.Error())
		}
	}

	tokenStore := database.NewTokenStore(cfg.App.TokenTTL)
	folderStore := database.NewFolderStore(fileStorage, "sessions")
	imageFetcher := fetcher.NewHTTPFetcher(cfg.App.FetchTimeout)
	imageConverter := processor.NewImageConverter()

	var producer kafka.Producer
	if cfg.Broker.Enabled {
		producer = kafka.NewProducer(cfg.Broker.Brokers, cfg.Broker.Topic)
	} else {
		producer = kafka.NewMockProducer()
	}

	imgService := service.NewImageService(tokenStore, folderStore, imageFetcher, imageConverter, producer, fileStorage, cfg.App)
	imgHandler := transport.NewImageHandler(imgService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	cleanup := worker.NewTokenCleanupWorker(tokenStore, cfg.Worker.CleanupInterval)
	go cleanup.Start(workerCtx)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(imgHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	stopWorkers()
	producer.Close()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}
