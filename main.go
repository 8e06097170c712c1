package main

import (
	"os"
	"os/signal"
	"syscall"

	"prediction-league-service/config"
	"prediction-league-service/database"
	"prediction-league-service/logger"
	"prediction-league-service/scoring"
	"prediction-league-service/services"
	"prediction-league-service/web"
)

func main() {
	logger.Println("Starting prediction league service...")

	// 加载配置
	cfg := config.Load()

	// 加载计分规则(默认表 + 可选 YAML 覆盖)
	rules, err := scoring.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Fatalf("Failed to load scoring rules: %v", err)
	}
	if cfg.RulesFile != "" {
		logger.Printf("Scoring rules loaded from %s", cfg.RulesFile)
	}

	// 连接数据库
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 运行数据库迁移
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	logger.Println("Database connected and migrated")

	// 创建存储层
	eventStore := services.NewEventStore(db)
	betStore := services.NewBetStore(db)
	userStore := services.NewUserStore(db)
	specialBetStore := services.NewSpecialBetStore(db)

	// 查询缓存
	cache := services.NewQueryCache(cfg.CacheTTL)

	// 创建 Telegram 通知器
	notifier := services.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	notifier.NotifyServiceStart(cfg.Season)

	// 创建WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 业务服务
	placement := services.NewPlacementService(eventStore, betStore, cache)
	leaderboard := services.NewLeaderboardService(betStore, userStore, specialBetStore, cache)
	settlement := services.NewSettlementService(eventStore, betStore, rules, cache, wsHub, notifier, leaderboard)
	season := services.NewSeasonService(cfg, specialBetStore, rules, cache, notifier)

	// 启动结果消息消费者(配置了 AMQP 时)
	var consumer *services.ResultsConsumer
	if cfg.AMQPURL != "" {
		consumer = services.NewResultsConsumer(cfg.AMQPURL, cfg.ResultsQueue, settlement, eventStore)
		go func() {
			if err := consumer.Start(); err != nil {
				logger.Errorf("Results consumer error: %v", err)
			}
		}()
		logger.Println("Results consumer started")
	}

	// 启动Web服务器
	server := web.NewServer(cfg, eventStore, betStore, userStore, placement, settlement, leaderboard, season, wsHub)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Web server error: %v", err)
		}
	}()

	logger.Printf("Web server started on port %s", cfg.Port)

	// 等待退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Println("Shutting down...")
	if consumer != nil {
		consumer.Stop()
	}
	server.Stop()
	logger.Println("Service stopped")
}
