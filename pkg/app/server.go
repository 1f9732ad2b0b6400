package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"pricescan/pkg/api"
	"pricescan/pkg/config"
	"pricescan/pkg/offline"
	"pricescan/pkg/web"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RunServer(ctx context.Context, config *config.Server) error {
	logger := getLogger("ServerApp")

	logger.Sugar().Infof("start ServerApp")

	r, closer, err := newRouter(ctx, logger, config)
	if err != nil {
		return err
	}
	defer closer()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%v", config.Port),
		Handler: r,
	}

	go func() {
		logger.Sugar().Infof("start listening on port=%d", config.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("can't start server at port=%d: (%s)", config.Port, err.Error())
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("server shutdown failed: (%s)", err.Error())
	}

	logger.Sugar().Infof("ServerApp stopped. Bye!")

	return nil
}

// newRouter - the validated prices API, every other route goes through the asset worker.
func newRouter(ctx context.Context, logger *zap.Logger, config *config.Server) (*gin.Engine, func(), error) {
	prices, closeLedger, err := openLedger(logger, config.Ledger)
	if err != nil {
		return nil, nil, err
	}

	worker, closeCaches, err := newWorker(logger, config.Assets)
	if err != nil {
		closeLedger()
		return nil, nil, err
	}
	closer := func() {
		closeCaches()
		closeLedger()
	}

	if err := worker.Run(ctx); err != nil {
		logger.Sugar().Errorf("asset worker generation=%s not activated, serving from network: (%s)", worker.Generation(), err.Error())
	}
	logger.Sugar().Infof("asset worker generation=%s, state=%s", worker.Generation(), worker.State())

	r := gin.New()

	r.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		gin.Recovery(),
	)

	restAPI := api.NewAPI(logger, prices)
	if err := restAPI.RegisterHandlers(r); err != nil {
		closer()
		logger.Sugar().Errorf("unable to register api handlers: (%s)", err.Error())
		return nil, nil, err
	}
	r.NoRoute(gin.WrapH(worker))

	return r, closer, nil
}

// newWorker - asset worker over the configured cache storage. The network is
// ORIGIN_URL when set, the embedded web assets otherwise.
func newWorker(logger *zap.Logger, config config.Assets) (*offline.Worker, func(), error) {
	logger.Sugar().Infof("init asset cache storage=%s", config.Storage.Type)
	caches, err := offline.NewStorage(config.Storage)
	if err != nil {
		logger.Sugar().Errorf("unable to init asset cache storage=%s: (%s)", config.Storage.Type, err.Error())
		return nil, nil, err
	}
	closer := func() {
		if err := caches.Close(); err != nil {
			logger.Sugar().Errorf("can't close asset cache storage: (%s)", err.Error())
		}
	}

	var network offline.Fetcher
	if config.OriginURL != "" {
		client := &http.Client{Timeout: config.FetchTimeout}
		network, err = offline.NewOriginFetcher(client, config.OriginURL)
		if err != nil {
			closer()
			logger.Sugar().Errorf("unable to use origin=%s: (%s)", config.OriginURL, err.Error())
			return nil, nil, err
		}
		logger.Sugar().Infof("assets origin=%s", config.OriginURL)
	} else {
		network = offline.NewHandlerFetcher(web.Handler())
		logger.Sugar().Infof("assets origin=embedded")
	}

	return offline.NewWorker(logger, config, caches, network), closer, nil
}
