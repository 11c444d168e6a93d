//go:build ignore

// 生成本地调试用的 JWT
//
// 用法: go run scripts/gen_token.go -user 1 -name ada

package main

import (
	"codewithme_backend/internal/config"
	"codewithme_backend/internal/util"
	"flag"
	"fmt"
	"log"
	"time"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	userID := flag.String("user", "1", "用户ID")
	username := flag.String("name", "dev", "用户名")
	email := flag.String("email", "dev@codewithme.dev", "邮箱")
	ttl := flag.Duration("ttl", 24*time.Hour, "有效期")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	token, err := util.GenerateJWT(util.MustParseUint(*userID), *username, *email, cfg.JWT.Secret, *ttl)
	if err != nil {
		log.Fatalf("生成 token 失败: %v", err)
	}
	fmt.Println(token)
}
