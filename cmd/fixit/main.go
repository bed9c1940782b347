package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fixitworks/fixit/internal/auth"
	"github.com/fixitworks/fixit/internal/clock"
	"github.com/fixitworks/fixit/internal/config"
	"github.com/fixitworks/fixit/internal/logger"
	"github.com/fixitworks/fixit/internal/notification"
	"github.com/fixitworks/fixit/internal/otp"
	"github.com/fixitworks/fixit/internal/server"
	"github.com/fixitworks/fixit/internal/storage"
	"github.com/fixitworks/fixit/internal/user"
	"github.com/fixitworks/fixit/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		db.Module,
		fx.Provide(newIDNode),
		user.Module,
		otp.Module,
		notification.Module,
		storage.Module,
		auth.Module,
		server.Module,
	).Run()
}

func newIDNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
