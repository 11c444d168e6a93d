//go:build ignore

// 导入示例挑战
//
// 标题已存在的挑战会被跳过，作者按邮箱查找，不存在时创建。
//
// 用法: go run scripts/seed_challenges.go -file scripts/challenges.yaml

package main

import (
	"codewithme_backend/internal/config"
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/repository"
	"codewithme_backend/internal/seed"
	"codewithme_backend/internal/service"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/database"
	"codewithme_backend/pkg/logger"
	"context"
	"errors"
	"flag"
	"log"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	seedPath := flag.String("file", "scripts/challenges.yaml", "挑战数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := seed.Load(*seedPath)
	if err != nil {
		log.Fatalf("解析挑战数据失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	author := &model.User{Username: data.Author.Username, Email: data.Author.Email}
	if err := users.FirstOrCreateByEmail(ctx, author); err != nil {
		log.Fatalf("创建作者失败: %v", err)
	}

	challenges := service.NewChallengeService(
		repository.NewChallengeRepository(db),
		repository.NewCommentRepository(db),
		users, nil, 1,
	)
	created := 0
	for _, c := range data.Challenges {
		req, err := c.Request()
		if err != nil {
			log.Fatalf("挑战 %q 数据无效: %v", c.Title, err)
		}
		_, err = challenges.Create(ctx, author.ID, req)
		if errors.Is(err, util.ErrDuplicateTitle) {
			log.Printf("跳过已存在的挑战: %s", c.Title)
			continue
		}
		if err != nil {
			log.Fatalf("创建挑战 %q 失败: %v", c.Title, err)
		}
		created++
	}
	log.Printf("完成！新增 %d 个挑战", created)
}
