package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/certprep/internal/api"
	"github.com/abhisek/certprep/internal/quizgen"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CERTPREP_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	addr := e.cfg.HTTPAddr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}
	switch e.cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(e.cfg.GinMode)
	default:
		return fmt.Errorf("unknown GIN_MODE %q", e.cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker, closeLocker, err := e.newLocker(ctx)
	if err != nil {
		return err
	}
	defer closeLocker()

	var generator api.QuizGenerator
	if svc, err := e.newGenerator(ctx); err != nil {
		e.log.Warn("llm provider not configured, quiz generation disabled", "error", err)
		generator = quizgen.NewService(e.store.QuizRepo(), disabledGenerator{reason: err}, quizgen.DefaultConfig(), e.log)
	} else {
		generator = svc
	}

	router := api.NewRouter(api.Config{
		Log:         e.log,
		Generator:   generator,
		Evaluator:   e.newEvaluator(locker),
		Reader:      e.store,
		CORSOrigins: e.cfg.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.log.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		e.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
