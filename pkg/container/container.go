package container

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/config"
	addresshandler "storefront-backend/internal/domains/address/handler"
	addressrepo "storefront-backend/internal/domains/address/repository"
	addresssvc "storefront-backend/internal/domains/address/service"
	discounthandler "storefront-backend/internal/domains/discount/handler"
	discountrepo "storefront-backend/internal/domains/discount/repository"
	discountsvc "storefront-backend/internal/domains/discount/service"
	orderhandler "storefront-backend/internal/domains/order/handler"
	orderrepo "storefront-backend/internal/domains/order/repository"
	ordersvc "storefront-backend/internal/domains/order/service"
	paymenthandler "storefront-backend/internal/domains/payment/handler"
	"storefront-backend/internal/domains/payment/gateway/omise"
	paymentrepo "storefront-backend/internal/domains/payment/repository"
	paymentsvc "storefront-backend/internal/domains/payment/service"
	producthandler "storefront-backend/internal/domains/product/handler"
	productrepo "storefront-backend/internal/domains/product/repository"
	productsvc "storefront-backend/internal/domains/product/service"
	shippinghandler "storefront-backend/internal/domains/shipping/handler"
	shippingrepo "storefront-backend/internal/domains/shipping/repository"
	shippingsvc "storefront-backend/internal/domains/shipping/service"
	userhandler "storefront-backend/internal/domains/user/handler"
	userrepo "storefront-backend/internal/domains/user/repository"
	usersvc "storefront-backend/internal/domains/user/service"
	infracache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/notification"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"
)

// Container wires every component of the API process. Initialization
// is strictly ordered: config, infrastructure, repositories, services,
// handlers. Cleanup runs in reverse.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *database.PostgresDB
	Cache      *infracache.RedisCache
	JWTManager *jwt.Manager
	Queue      *queue.Client

	// Services the worker shares with the API
	DiscountService discountsvc.DiscountService
	ShippingService shippingsvc.ShippingService
	AddressService  addresssvc.AddressService
	ProductService  productsvc.ProductService
	UserService     usersvc.UserService
	OrderService    ordersvc.OrderService
	PaymentService  paymentsvc.PaymentService

	// Handlers
	DiscountPublicHandler *discounthandler.PublicHandler
	DiscountAdminHandler  *discounthandler.AdminHandler
	ShippingHandler       *shippinghandler.ShippingHandler
	AddressHandler        *addresshandler.AddressHandler
	UserHandler           *userhandler.UserHandler
	ProductHandler        *producthandler.ProductHandler
	OrderHandler          *orderhandler.OrderHandler
	PaymentHandler        *paymenthandler.PaymentHandler
}

// New builds the container. A database failure aborts startup; a Redis
// failure is logged and tolerated.
func New(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	c.Cache = infracache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, continuing without cache hits", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(c.Config.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Queue = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	return nil
}

func (c *Container) initServices() {
	pool := c.DB.Pool

	discountRepo := discountrepo.NewPostgresDiscountRepository(pool)
	shippingRepo := shippingrepo.NewPostgresShippingRepository(pool)
	addressRepo := addressrepo.NewPostgresAddressRepository(pool)
	userRepo := userrepo.NewPostgresUserRepository(pool)
	productRepo := productrepo.NewPostgresProductRepository(pool)
	orderRepo := orderrepo.NewPostgresOrderRepository(pool)
	paymentRepo := paymentrepo.NewPostgresPaymentRepository(pool)

	c.DiscountService = discountsvc.NewDiscountService(discountRepo)
	c.ShippingService = shippingsvc.NewShippingService(shippingRepo)
	c.AddressService = addresssvc.NewAddressService(addressRepo, c.Cache)
	c.UserService = usersvc.NewUserService(userRepo, c.JWTManager)
	c.ProductService = productsvc.NewProductService(productRepo, c.Cache)
	c.OrderService = ordersvc.NewOrderService(pool, orderRepo, productRepo, c.DiscountService, c.ShippingService)

	omiseGateway := omise.NewClient(omise.Config{
		PublicKey: c.Config.Omise.PublicKey,
		SecretKey: c.Config.Omise.SecretKey,
		APIURL:    c.Config.Omise.APIURL,
	})
	c.PaymentService = paymentsvc.NewPaymentService(paymentRepo, omiseGateway, c.OrderService, c.UserService, c.Queue)
}

func (c *Container) initHandlers() {
	c.DiscountPublicHandler = discounthandler.NewPublicHandler(c.DiscountService)
	c.AddressHandler = addresshandler.NewAddressHandler(c.AddressService)
	c.DiscountAdminHandler = discounthandler.NewAdminHandler(c.DiscountService)
	c.ShippingHandler = shippinghandler.NewShippingHandler(c.ShippingService)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.ProductHandler = producthandler.NewProductHandler(c.ProductService)
	c.OrderHandler = orderhandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymenthandler.NewPaymentHandler(c.PaymentService)
}

// NewNotifiers builds the notification senders; the worker is their
// only consumer.
func (c *Container) NewNotifiers() (notification.EmailService, *notification.DiscordNotifier) {
	email := notification.NewSMTPEmailService(
		c.Config.Email.SMTPHost,
		c.Config.Email.SMTPPort,
		c.Config.Email.From,
	)
	discord := notification.NewDiscordNotifier(c.Config.Discord.WebhookURL)
	return email, discord
}

// Cleanup releases resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("close queue client", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container cleanup complete", nil)
}
