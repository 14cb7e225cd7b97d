package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"checkin-server/config"
	"checkin-server/repo"
	"checkin-server/routes"
	"checkin-server/services"
	"checkin-server/storage"
	"checkin-server/utils"

	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "checkin-server",
		Short: "Apartment listing and reservation API",
		RunE:  runServe,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		createAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if _, err := storage.InitializeDB(cfg); err != nil {
				return err
			}
			fmt.Println("Database schema is up to date.")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			superuser, _ := cmd.Flags().GetBool("superuser")

			cfg := config.Load()
			logger := golog.New().SetLevel(cfg.LogLevel)
			db, err := storage.InitializeDB(cfg)
			if err != nil {
				return err
			}

			auth := services.NewAuthService(storage.NewStore(db, cfg.LockTimeout), nil, logger)
			user, err := auth.CreateAdmin(cmd.Context(), services.CreateAdminInput{
				Email:     email,
				Password:  password,
				Superuser: superuser,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created %s %s (%s)\n", user.Role(), user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "admin e-mail address")
	cmd.Flags().String("password", "", "password, at least 8 characters")
	cmd.Flags().Bool("superuser", false, "grant super_admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := golog.New().SetLevel(cfg.LogLevel)

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	db, err := storage.InitializeDB(cfg)
	if err != nil {
		return err
	}
	store := storage.NewStore(db, cfg.LockTimeout)

	rdb, err := storage.InitializeRedis(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	tokens := utils.NewTokens(cfg, storage.NewRedisTokenStore(rdb))

	var images repo.ImageStore
	if cfg.CloudinaryEnabled() {
		cld, err := storage.NewCloudinary(cfg, logger)
		if err != nil {
			return err
		}
		defer cld.Close()
		images = cld
	} else {
		logger.Warn("Cloudinary credentials missing, image upload and cleanup are disabled")
	}

	app := routes.NewApp(routes.Deps{
		Apartments:   services.NewApartmentService(store, images, services.CreatorOrSuperuser, time.Now, logger),
		Listing:      services.NewListingService(store, time.Now, logger),
		Reservations: services.NewReservationService(store, logger),
		Auth:         services.NewAuthService(store, tokens, logger),
		Tokens:       tokens,
		Images:       images,
		LogLevel:     cfg.LogLevel,
	})

	logger.Infof("listening on :%s", cfg.Port)
	return app.Listen(":"+cfg.Port, iris.WithoutServerError(iris.ErrServerClosed))
}
