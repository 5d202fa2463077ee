package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/kdrange/internal/build"
	"github.com/go-sod/kdrange/internal/buildinfo"
	kdrange "github.com/go-sod/kdrange/internal/config"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/query"
	"github.com/go-sod/kdrange/internal/render"
	"github.com/go-sod/kdrange/internal/server"
	"github.com/go-sod/kdrange/internal/setup"
	"github.com/go-sod/kdrange/internal/shutdown"
	"github.com/go-sod/kdrange/internal/srvenv"
	"google.golang.org/grpc"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	defer done()
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, cancel func()) error {
	logger := logging.FromContext(ctx)
	config := kdrange.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			logger.Errorf("env.Close: %v", err)
		}
	}()

	mux, err := newMux(ctx, &config, env)
	if err != nil {
		return err
	}

	srv, err := server.New(config.SrvAddr, config.MaxConns)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(config.GRPCAddr, config.MaxConns)
	if err != nil {
		if cerr := srv.Close(); cerr != nil {
			logger.Errorf("close http listener: %v", cerr)
		}
		return fmt.Errorf("server.New grpc: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcSrv.ServeGRPC(ctx, grpc.NewServer()); err != nil {
			cancel()
			errCh <- fmt.Errorf("grpc: %w", err)
			return
		}
		errCh <- nil
	}()
	go func() {
		if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
			cancel()
			errCh <- fmt.Errorf("http: %w", err)
			return
		}
		errCh <- nil
	}()
	logger.Infof("serving http on %s, grpc health on %s", srv.Addr(), grpcSrv.Addr())

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.New(fmt.Sprint(errs))
	}
	return nil
}

func newMux(ctx context.Context, config *kdrange.Config, env *srvenv.SrvEnv) (*http.ServeMux, error) {
	logger := logging.FromContext(ctx)
	registry := env.Registry()

	var presets build.PresetGetter
	store, err := env.Presets(ctx)
	switch {
	case err == nil:
		presets = store
	case errors.Is(err, srvenv.ErrNoPresets):
		logger.Info("presets disabled")
	default:
		return nil, err
	}

	buildHandler, err := build.NewHandler(&config.Build, registry, presets)
	if err != nil {
		return nil, fmt.Errorf("build.NewHandler: %w", err)
	}
	searchHandler, err := query.NewHandler(&config.Search, registry)
	if err != nil {
		return nil, fmt.Errorf("query.NewHandler: %w", err)
	}
	renderHandler, err := render.NewHandler(&config.Render, registry)
	if err != nil {
		return nil, fmt.Errorf("render.NewHandler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/build", httputil.RequireBearer(config.BearerToken, buildHandler))
	mux.Handle("/search", httputil.RequireBearer(config.BearerToken, searchHandler))
	mux.Handle("/render", httputil.RequireBearer(config.BearerToken, renderHandler))
	mux.Handle("/health", server.HandleHealth(ctx))
	if metrics := env.Metrics(); metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux, nil
}
