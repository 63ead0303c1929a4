package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/auth"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/storage"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("[MAIN] [ERROR] mongo connection failed: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Println("[MAIN] [ERROR] mongo disconnect failed:", err)
		}
	}()

	db := client.Database(cfg.DBName)

	for _, collection := range []string{"users", "admins", "clothpartners"} {
		if err := database.EnsurePrincipalIndexes(db, collection); err != nil {
			log.Fatal("[MAIN] [ERROR] index bootstrap failed for ", collection, ": ", err)
		}
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Fatal("[MAIN] [ERROR] order index bootstrap failed: ", err)
	}
	if err := database.EnsureSubscriberIndexes(db); err != nil {
		log.Fatal("[MAIN] [ERROR] subscriber index bootstrap failed: ", err)
	}

	uploader := storage.NewImageKit(cfg.ImageKitPrivateKey, cfg.ImageKitPublicKey, cfg.ImageKitURLEndpoint, cfg.UploadTimeout)
	throttle := auth.NewThrottle()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURLs,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.TextPlainJSON())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})

	authGroup := r.Group("/api/auth")
	{
		user := authGroup.Group("/user")
		{
			user.POST("/register", handlers.RegisterUser(db, cfg))
			user.POST("/login", handlers.LoginUser(db, cfg, throttle))
			user.GET("/logout", handlers.Logout(cfg, "User logged out successfully"))
		}

		admin := authGroup.Group("/admin")
		{
			admin.POST("/register", handlers.RegisterAdmin(db, cfg))
			admin.POST("/login", handlers.LoginAdmin(db, cfg, throttle))
			admin.GET("/logout", handlers.Logout(cfg, "Admin logged out successfully"))
			admin.GET("/profile", middleware.AdminAuth(db, cfg.JWTSecret), handlers.AdminProfile(db))
		}

		partner := authGroup.Group("/partner")
		{
			partner.POST("/register", handlers.RegisterPartner(db, cfg))
			partner.POST("/login", handlers.LoginPartner(db, cfg, throttle))
			partner.GET("/logout", handlers.Logout(cfg, "Partner logged out successfully"))
			partner.GET("/profile", middleware.PartnerAuth(db, cfg.JWTSecret), handlers.PartnerProfile(db))
		}

		authGroup.GET("/profile", handlers.Profile(db, cfg))
	}

	cloth := r.Group("/api/cloth")
	{
		cloth.POST("", middleware.StaffAuth(db, cfg.JWTSecret), handlers.CreateCloth(db, uploader))
		cloth.GET("", handlers.GetAllCloths(db))
		cloth.GET("/categories", handlers.GetCategories(db))
		cloth.GET("/search", handlers.SearchCloths(db))
		cloth.GET("/:id", handlers.GetClothByID(db))
		cloth.DELETE("/del/:id", middleware.StaffAuth(db, cfg.JWTSecret), handlers.DeleteCloth(db))
	}

	order := r.Group("/api/order", middleware.UserAuth(db, cfg.JWTSecret))
	{
		order.POST("", handlers.CreateOrder(db))
		order.GET("", handlers.GetUserOrders(db))
		order.GET("/:orderId", handlers.GetOrderByID(db))
		order.PUT("/:orderId/cancel", handlers.CancelOrder(db))
		order.GET("/:orderId/track", handlers.TrackOrder(db))
	}

	wishlist := r.Group("/api/wishlist", middleware.UserAuth(db, cfg.JWTSecret))
	{
		wishlist.GET("", handlers.GetWishlist(db))
		wishlist.POST("", handlers.AddToWishlist(db))
		wishlist.DELETE("/:productId", handlers.RemoveFromWishlist(db))
	}

	address := r.Group("/api/address", middleware.UserAuth(db, cfg.JWTSecret))
	{
		address.GET("", handlers.GetAddresses(db))
		address.POST("", handlers.AddAddress(db))
		address.PUT("/:addressId", handlers.UpdateAddress(db))
		address.DELETE("/:addressId", handlers.DeleteAddress(db))
		address.PATCH("/:addressId/default", handlers.SetDefaultAddress(db))
	}

	r.POST("/api/subscription", handlers.AddSubscriber(db))

	videos := r.Group("/api/videos")
	{
		videos.GET("", handlers.GetAllVideos(db))
		videos.GET("/:id", handlers.GetVideoByID(db))
		videos.POST("", middleware.AdminAuth(db, cfg.JWTSecret), handlers.CreateVideo(db, uploader))
		videos.PUT("/:id", middleware.AdminAuth(db, cfg.JWTSecret), handlers.UpdateVideo(db, uploader))
		videos.DELETE("/:id", middleware.AdminAuth(db, cfg.JWTSecret), handlers.DeleteVideo(db))
	}

	adminPanel := r.Group("/api/admin", middleware.AdminAuth(db, cfg.JWTSecret))
	{
		adminPanel.GET("/dashboard", handlers.Dashboard(db))
		adminPanel.GET("/orders", handlers.ListOrders(db))
		adminPanel.POST("/orders", handlers.AdminCreateOrder(db))
		adminPanel.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus(db))
		adminPanel.GET("/users", handlers.ListUsers(db))
		adminPanel.GET("/users/:userId", handlers.GetUser(db))
		adminPanel.PUT("/users/:userId", handlers.UpdateUser(db))
		adminPanel.PUT("/users/:userId/status", handlers.UpdateUserStatus(db))
		adminPanel.DELETE("/users/:userId", handlers.DeleteUser(db))
	}

	log.Println("[MAIN] [INFO] listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[MAIN] [ERROR] server stopped: ", err)
	}
}
