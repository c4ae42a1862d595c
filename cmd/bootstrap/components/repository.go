package components

import (
	"lendit/internal/infra/readstore"
	"lendit/internal/infra/repository"
	"lendit/internal/usecase/commands"
	"lendit/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repository.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
		),
		fx.Annotate(
			repository.NewCommentRepository,
			fx.As(new(commands.CommentRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			readstore.NewCommandReadStore,
			fx.As(new(commands.CommandReads)),
		),
		// Read side
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)
