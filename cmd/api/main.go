package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/creamroast/pos-api/internal/config"
	"github.com/creamroast/pos-api/internal/handlers"
	"github.com/creamroast/pos-api/internal/models"
	"github.com/creamroast/pos-api/internal/routes"
	"github.com/creamroast/pos-api/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Warn("could not load .env file, relying on system environment variables")
	}

	cfg := config.Load()

	st, err := store.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.InitSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize schema")
	}

	if err := seedAdmin(ctx, st, cfg, log); err != nil {
		log.WithError(err).Fatal("failed to seed bootstrap admin")
	}

	app := &handlers.Handlers{
		Store:     st,
		Log:       log,
		JWTSecret: []byte(cfg.JWTSecret),
	}

	router := routes.SetupRouter(app, cfg.AllowOrigin)

	log.WithField("port", cfg.Port).Info("starting Cream & Roast POS API")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// seedAdmin creates the first administrator on an empty user table so
// the register can be logged into after a fresh install.
func seedAdmin(ctx context.Context, st *store.Store, cfg config.Config, log *logrus.Logger) error {
	count, err := st.CountUsers(ctx)
	if err != nil || count > 0 {
		return err
	}
	if cfg.AdminPassword == "" {
		log.Warn("no users exist and POS_ADMIN_PASSWORD is not set; skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = st.CreateUser(ctx, store.CreateUserParams{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.WithField("email", cfg.AdminEmail).Info("bootstrap administrator created")
	return nil
}
