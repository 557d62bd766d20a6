package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"ratedeck/internal/app/albums"
	"ratedeck/internal/app/artists"
	"ratedeck/internal/app/ratings"
	"ratedeck/internal/app/songs"
	"ratedeck/internal/app/users"
	"ratedeck/internal/config"
	"ratedeck/internal/http/middleware"
	"ratedeck/internal/httpapi"
	"ratedeck/internal/library"
)

func newHTTPHandler(cfg *config.Config, lib *library.Library, logger zerolog.Logger) http.Handler {
	userSvc := users.New(lib, users.Config{
		Secret: []byte(cfg.Security.JWTSecret),
		TTL:    cfg.Security.TokenTTL,
	})
	songSvc := songs.New(lib)
	albumSvc := albums.New(lib)
	artistSvc := artists.New(lib)
	ratingsSvc := ratings.New(lib)

	api := httpapi.New(userSvc, songSvc, albumSvc, artistSvc, ratingsSvc)

	return middleware.Chain(api.Routes(),
		middleware.Recovery(logger),
		middleware.RequestLogging(logger),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
}
