package main

import (
	"context"
	"os"
	"strings"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"
	"Lee_Social/internal/router"
	"Lee_Social/internal/service"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := envOr("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/social?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接 redis
	if err := redis.Init(envOr("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Connection{},
		&model.Follow{},
		&model.Community{},
		&model.CommunityMember{},
		&model.JoinRequest{},
		&model.CommunityInvitation{},
		&model.Post{},
		&model.CommunityEvent{},
		&model.NotificationOutbox{},
	)

	// 通知事件投递：有 kafka 就发 kafka，否则打日志
	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("KAFKA_TOPIC", "social-notifications"),
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(mysql.DB, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relayer.Run(ctx)

	emailCfg := pkg.SMTPConfig{
		Host:     envOr("SMTP_HOST", "smtp.example.com"),
		Port:     587,
		Username: envOr("SMTP_USER", "no-reply@example.com"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOr("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	// Gin
	r := router.InitRouter(mysql.DB, emailCfg)
	if err := r.Run(envOr("LISTEN_ADDR", ":8080")); err != nil {
		return
	}
}
