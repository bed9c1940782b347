package user

import (
	"github.com/fixitworks/fixit/internal/user/domain"
	"github.com/fixitworks/fixit/internal/user/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("user",
	fx.Provide(repository.New),
	fx.Invoke(migrate),
)

func migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(&domain.User{})
}
