package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"prediction-league-service/config"
	"prediction-league-service/logger"
	"prediction-league-service/services"
)

type Server struct {
	config      *config.Config
	events      *services.EventStore
	bets        *services.BetStore
	users       *services.UserStore
	placement   *services.PlacementService
	settlement  *services.SettlementService
	leaderboard *services.LeaderboardService
	season      *services.SeasonService
	wsHub       *Hub
	httpServer  *http.Server
	upgrader    websocket.Upgrader
}

func NewServer(cfg *config.Config, events *services.EventStore, bets *services.BetStore, users *services.UserStore,
	placement *services.PlacementService, settlement *services.SettlementService,
	leaderboard *services.LeaderboardService, season *services.SeasonService, hub *Hub) *Server {
	return &Server{
		config:      cfg,
		events:      events,
		bets:        bets,
		users:       users,
		placement:   placement,
		settlement:  settlement,
		leaderboard: leaderboard,
		season:      season,
		wsHub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有来源(生产环境需要限制)
			},
		},
	}
}

func (s *Server) Start() error {
	router := mux.NewRouter()

	// API路由
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	api.HandleFunc("/events", s.handleGetEvents).Methods("GET")
	api.HandleFunc("/bets", s.handleGetUserBets).Methods("GET")
	api.HandleFunc("/bets/place", s.handlePlaceBet).Methods("POST")
	api.HandleFunc("/bets/compare", s.handleCompareBets).Methods("GET")
	api.HandleFunc("/leaderboard", s.handleGetLeaderboard).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/finals-bet", s.handleGetFinalsBet).Methods("GET")
	api.HandleFunc("/finals-bet", s.handlePlaceFinalsBet).Methods("POST")
	api.HandleFunc("/finals-mvp-bet", s.handleGetMvpBet).Methods("GET")
	api.HandleFunc("/finals-mvp-bet", s.handlePlaceMvpBet).Methods("POST")

	// 管理端路由(赛事同步/结果录入/用户目录/赛季收官)
	api.HandleFunc("/admin/events", s.handleUpsertEvent).Methods("POST")
	api.HandleFunc("/admin/events/{event_id}/result", s.handleEventResult).Methods("POST")
	api.HandleFunc("/admin/users", s.handleUpsertUser).Methods("POST")
	api.HandleFunc("/admin/season/conclude", s.handleConcludeSeason).Methods("POST")

	// WebSocket路由
	router.HandleFunc("/ws", s.handleWebSocket)

	// Prometheus指标
	router.Handle("/metrics", promhttp.Handler())

	// CORS配置
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleWebSocket 升级WebSocket连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  s.wsHub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	s.wsHub.register <- client

	go client.writePump()
	go client.readPump()
}
