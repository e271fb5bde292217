package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/erp-estoque/internal/config"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	direction := flag.String("direction", string(database.Up), "sentido da migração: up ou down")
	path := flag.String("path", "", "diretório das migrações (padrão: MIGRATIONS_PATH)")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg := config.LoadDatabase("")
	if *path == "" {
		*path = cfg.MigrationsPath
	}

	// Executar as migrações
	version, err := database.RunMigrations(cfg.ConnectionURL(), *path, database.Direction(*direction))
	if err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Printf("Migrações executadas com sucesso! Versão atual: %d", version)
}
