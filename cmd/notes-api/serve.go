package main

import (
	"log"
	"net/http"

	"github.com/layladev/notes-api/internal/api"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/config"
	"github.com/layladev/notes-api/internal/db"
	"github.com/layladev/notes-api/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			userStore := store.NewUserStore(database)
			noteStore := store.NewNoteStore(database)

			tokenService := auth.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.Lifetime)
			authMiddleware := auth.NewMiddleware(tokenService, userStore)

			router := api.NewRouter(api.Deps{
				AuthMiddleware: authMiddleware,
				TokenService:   tokenService,
				UserStore:      userStore,
				NoteStore:      noteStore,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
