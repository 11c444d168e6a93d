// @title CodeWithMe 挑战服务 API
// @version 1.0
// @description 编程挑战、评论与代码评测服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"codewithme_backend/internal/app"
	"codewithme_backend/internal/config"
	"codewithme_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		application.Close()
		return
	}

	if err := application.Run(); err != nil {
		logger.Log.Fatal("Server stopped with error", zap.Error(err))
	}
}
