package auth

import (
	"github.com/fixitworks/fixit/internal/auth/google"
	"github.com/fixitworks/fixit/internal/auth/service"
	"github.com/fixitworks/fixit/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(token.NewIssuer),
	fx.Provide(google.NewVerifier),
	fx.Provide(service.New),
)
