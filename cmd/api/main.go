package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/erp-estoque/internal/config"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/joho/godotenv"

	_ "github.com/hugohenrick/erp-estoque/docs"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	zlog, err := logger.NewLogger(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar aplicação
	app, err := NewApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Error("erro ao criar aplicação", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.SetupRoutes("/api/v1")

	// Iniciar o servidor
	if err := app.Start(ctx); err != nil {
		zlog.Error("servidor encerrado com erro", "error", err)
		os.Exit(1)
	}
}
