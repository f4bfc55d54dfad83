// Package main runs the profile directory without a database or an
// external identity service, using in-memory storage for both sides.
// This is useful for:
// - Quick development and testing
// - Demo/prototype environments
// - Learning the API without database setup
//
// Note: All data is lost when the server stops. For production, use
// cmd/profiles with PostgreSQL.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-profile/pkg/idbridge"
	"github.com/tendant/simple-profile/pkg/notify"
	"github.com/tendant/simple-profile/pkg/profile"
	profileapi "github.com/tendant/simple-profile/pkg/profile/api"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting In-Memory Profile Directory (no database required)")
	slog.Info(strings.Repeat("=", 60))

	repo := profile.NewInMemProfileRepository()
	bridge := idbridge.NewInMemIdentityBridge()
	notifier := &notify.MockNotifier{}

	profileService := profile.NewProfileService(repo, bridge,
		profile.WithNotifier(notifier),
	)

	seedProfiles(profileService)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	profileHandle := profileapi.NewHandle(profileService)
	profileHandle.RegisterRoutes(server.R)

	slog.Info(strings.Repeat("=", 60))
	slog.Info("In-Memory Profile Directory Ready")

	server.Run()
}

func seedProfiles(service *profile.ProfileService) {
	ctx := context.Background()

	seeds := []profile.CreateProfileParams{
		{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Phone:   "+1 555-0100",
			Address: "12 Analytical Way",
		},
		{
			Name:    "Grace Hopper",
			Email:   "grace@example.com",
			Phone:   "+1 555-0101",
			Address: "7 Compiler Court",
		},
	}

	for _, params := range seeds {
		result, err := service.CreateProfile(ctx, params)
		if err != nil {
			slog.Error("Failed to seed profile", "email", params.Email, "err", err)
			continue
		}
		slog.Info("Seeded profile", "email", params.Email, "tempSecret", result.TempSecret)
	}
}
