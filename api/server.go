package api

import (
	"context"
	
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/katatrina/notify-admin/internal/sms"
	"github.com/katatrina/notify-admin/internal/util"
	"github.com/katatrina/notify-admin/internal/worker"
	"github.com/redis/go-redis/v9"
)

// DeliveryService sends notifications on behalf of the HTTP handlers.
type DeliveryService interface {
	SendBulk(ctx context.Context, req delivery.BulkRequest) (delivery.BulkResult, error)
	SendToAll(ctx context.Context, req delivery.BulkRequest) (delivery.BulkResult, error)
	SendWithChannel(ctx context.Context, req delivery.SingleRequest) (delivery.SingleResult, error)
}

// TemplateCache drops cached copies of templates that were changed.
type TemplateCache interface {
	Invalidate(ctx context.Context, id uuid.UUID)
}

type BalanceProvider interface {
	GetBalance(ctx context.Context) (*sms.Balance, error)
}

type Server struct {
	router          *gin.Engine
	config          *util.Config
	dbStore         db.Store
	redisClient     *redis.Client
	notifications   notification.Repository
	deliveryService DeliveryService
	templateCache   TemplateCache
	taskDistributor worker.TaskDistributor
	taskInspector   worker.TaskInspector
	eventSender     event.EventSender
	smsBalance      BalanceProvider
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(
	config *util.Config,
	store db.Store,
	redisClient *redis.Client,
	deliveryService DeliveryService,
	templateCache TemplateCache,
	taskDistributor worker.TaskDistributor,
	taskInspector worker.TaskInspector,
	eventSender event.EventSender,
	smsBalance BalanceProvider,
) *Server {
	server := &Server{
		config:          config,
		dbStore:         store,
		redisClient:     redisClient,
		notifications:   notification.NewRepository(store),
		deliveryService: deliveryService,
		templateCache:   templateCache,
		taskDistributor: taskDistributor,
		taskInspector:   taskInspector,
		eventSender:     eventSender,
		smsBalance:      smsBalance,
	}
	
	server.setupRouter()
	return server
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	
	router.GET("/healthz", server.healthCheck)
	
	v1 := router.Group("/v1")
	
	bulkGroup := v1.Group("/bulk-notifications")
	{
		bulkGroup.POST("/send", server.sendBulkNotifications)
		bulkGroup.POST("/send-to-all", server.sendToAllRecipients)
		bulkGroup.POST("/send-by-csv", server.sendByCSV)
		
		// Queued through asynq; the result is fetched later by job id
		bulkGroup.POST("/jobs", server.enqueueBulkJob)
		bulkGroup.GET("/jobs/:jobID", server.getBulkJob)
		
		bulkGroup.GET("/:batchID/stream", server.streamBatchEvents)
	}
	
	notificationGroup := v1.Group("/notifications")
	{
		notificationGroup.GET("", server.listNotifications)
		notificationGroup.POST("", server.createNotification)
		notificationGroup.GET("/:id", server.getNotification)
		notificationGroup.PATCH("/:id/read", server.readNotification)
		notificationGroup.PATCH("/:id/unread", server.unreadNotification)
		notificationGroup.PATCH("/:id/cancel", server.cancelNotification)
		notificationGroup.GET("/from/:recipientID", server.listRecipientNotifications)
		notificationGroup.GET("/count/from/:recipientID", server.countRecipientNotifications)
	}
	
	templateGroup := v1.Group("/templates")
	{
		templateGroup.GET("", server.listTemplates)
		templateGroup.POST("", server.createTemplate)
		templateGroup.GET("/:id", server.getTemplate)
		templateGroup.PUT("/:id", server.updateTemplate)
		templateGroup.DELETE("/:id", server.deleteTemplate)
	}
	
	recipientGroup := v1.Group("/recipients")
	{
		recipientGroup.GET("", server.listRecipients)
		recipientGroup.POST("", server.createRecipient)
		recipientGroup.GET("/:id", server.getRecipient)
		recipientGroup.PUT("/:id", server.updateRecipient)
		recipientGroup.DELETE("/:id", server.deleteRecipient)
	}
	
	v1.GET("/sms/balance", server.getSMSBalance)
	
	server.router = router
	return router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
