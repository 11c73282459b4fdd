package main

import (
	"database/sql"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/kauanfelipempp/serverfc/internal/category"
	"github.com/kauanfelipempp/serverfc/internal/checkout"
	"github.com/kauanfelipempp/serverfc/internal/config"
	"github.com/kauanfelipempp/serverfc/internal/coupon"
	"github.com/kauanfelipempp/serverfc/internal/logging"
	"github.com/kauanfelipempp/serverfc/internal/mailer"
	"github.com/kauanfelipempp/serverfc/internal/order"
	"github.com/kauanfelipempp/serverfc/internal/payment"
	"github.com/kauanfelipempp/serverfc/internal/product"
	"github.com/kauanfelipempp/serverfc/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.Init("serverfc", "./logs/app.log")

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustBootstrapSchema(db)

	if err := os.MkdirAll("./uploads", 0755); err != nil {
		panic(err)
	}

	app := fiber.New()
	setupCORS(app)

	// external collaborators
	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	notifier := mailer.NewNotifier(sender)
	gateway := payment.NewClient(cfg.MPBaseURL, cfg.MPAccessToken)

	orderRepo := order.NewPostgresRepository(db)
	orderHandler := order.NewHandler(order.NewService(orderRepo, notifier))

	checkoutHandler := checkout.NewHandler(checkout.NewService(orderRepo, gateway, notifier, checkout.URLs{
		Success:      cfg.FrontendURL + "/pedido/sucesso",
		Failure:      cfg.FrontendURL + "/pedido/erro",
		Pending:      cfg.FrontendURL + "/pedido/pendente",
		Notification: cfg.BackendURL + "/api/webhook",
	}))
	webhookHandler := payment.NewWebhookHandler(gateway, orderRepo, notifier)

	productHandler := product.NewHandler(product.NewService(product.NewPostgresRepository(db)), "./uploads")
	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	couponHandler := coupon.NewHandler(coupon.NewService(coupon.NewPostgresRepository(db)))
	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))

	// public routes go in before the jwt middleware; everything registered
	// after it requires a token
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	webhookHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", "./uploads")

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterAdminRoutes(app, user.AdminRequired)
	productHandler.RegisterAdminRoutes(app, user.AdminRequired)
	categoryHandler.RegisterAdminRoutes(app, user.AdminRequired)
	couponHandler.RegisterAdminRoutes(app, user.AdminRequired)

	log.Info("starting server", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func mustBootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			nome TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS category (
			id SERIAL PRIMARY KEY,
			nome TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS product (
			id SERIAL PRIMARY KEY,
			nome TEXT NOT NULL,
			descricao TEXT,
			material TEXT,
			preco numeric NOT NULL DEFAULT 0,
			categoria_id INT REFERENCES category(id) ON DELETE SET NULL,
			tamanhos jsonb NOT NULL DEFAULT '[]',
			cores jsonb NOT NULL DEFAULT '[]',
			imagens jsonb NOT NULL DEFAULT '[]',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS coupon (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_amount numeric NOT NULL DEFAULT 0,
			free_shipping BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			cliente jsonb NOT NULL,
			itens jsonb NOT NULL,
			subtotal numeric NOT NULL DEFAULT 0,
			frete numeric NOT NULL DEFAULT 0,
			desconto numeric NOT NULL DEFAULT 0,
			total numeric NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			tracking_code TEXT,
			created_at TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
