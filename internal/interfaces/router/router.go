package router

import (
	authsvc "gavel-backend/internal/application/auth"
	bidsvc "gavel-backend/internal/application/bidding"
	catsvc "gavel-backend/internal/application/categories"
	commentsvc "gavel-backend/internal/application/comments"
	lesvc "gavel-backend/internal/application/listingevents"
	listsvc "gavel-backend/internal/application/listings"
	usersvc "gavel-backend/internal/application/user"
	watchsvc "gavel-backend/internal/application/watchlist"
	"gavel-backend/internal/config"
	"gavel-backend/internal/infrastructure/database"
	authhandler "gavel-backend/internal/interfaces/handlers/auth"
	bidhandler "gavel-backend/internal/interfaces/handlers/bids"
	cathandler "gavel-backend/internal/interfaces/handlers/categories"
	commenthandler "gavel-backend/internal/interfaces/handlers/comments"
	healthhandler "gavel-backend/internal/interfaces/handlers/health"
	lehandler "gavel-backend/internal/interfaces/handlers/listingevents"
	listhandler "gavel-backend/internal/interfaces/handlers/listings"
	userhandler "gavel-backend/internal/interfaces/handlers/users"
	watchhandler "gavel-backend/internal/interfaces/handlers/watchlist"
	"gavel-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health", hh.Plain)
	app.Get("/health/json", hh.JSON)
	app.Get("/reset", hh.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		// Users. Registration is public, everything else behind auth.
		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us, Config: sessionCfg}
		app.Post("/api/v1/users/register", uh.Register)
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/view-user/:id", uh.ViewUser)

		// Listings. Browsing is public, creation and closing require auth.
		ls := &listsvc.Service{DB: db}
		lh := &listhandler.Handlers{Service: ls}
		app.Get("/api/v1/listings/get-all-listings", lh.GetAllListings)
		app.Get("/api/v1/listings/get-listing/:listing_id", lh.GetListingByID)
		lg := app.Group("/api/v1/listings", middleware.RequireAuth())
		lg.Post("/create-listing", lh.CreateListing)
		lg.Post("/close-listing", lh.CloseListing)

		// Bids
		bs := &bidsvc.Service{DB: db}
		bh := &bidhandler.Handlers{Service: bs}
		app.Get("/api/v1/bids/get-bids/:listing_id", bh.GetBids)
		bg := app.Group("/api/v1/bids", middleware.RequireAuth())
		bg.Post("/place-bid", bh.PlaceBid)

		// Comments
		cs := &commentsvc.Service{DB: db}
		ch := &commenthandler.Handlers{Service: cs}
		app.Get("/api/v1/comments/get-comments/:listing_id", ch.GetComments)
		cg := app.Group("/api/v1/comments", middleware.RequireAuth())
		cg.Post("/add-comment", ch.AddComment)

		// Categories
		cats := &catsvc.Service{DB: db}
		cath := &cathandler.Handlers{Service: cats}
		app.Get("/api/v1/categories/get-categories", cath.GetCategories)
		catg := app.Group("/api/v1/categories", middleware.RequireAuth())
		catg.Post("/create-category", cath.CreateCategory)
		catg.Delete("/delete-category/:id", cath.DeleteCategory)

		// Watchlist
		ws := &watchsvc.Service{DB: db}
		wh := &watchhandler.Handlers{Service: ws}
		wg := app.Group("/api/v1/watchlist", middleware.RequireAuth())
		wg.Post("/toggle", wh.Toggle)
		wg.Get("/view-watchlist", wh.View)

		// ListingEvents
		les := &lesvc.Service{DB: db}
		leh := &lehandler.Handlers{Service: les}
		leg := app.Group("/api/v1/listing-events", middleware.RequireAuth())
		leg.Get("/get-events/:listing_id", leh.GetListingEvents)
	}

	return app, db, rdb, nil
}
