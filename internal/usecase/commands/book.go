package commands

import (
	"context"

	"bookswap/internal/domain/book"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListBookParams struct {
	Title      string
	Author     string
	Condition  string
	Categories []string
	PriceCents int64
}

type BookCommands interface {
	ListBook(ctx context.Context, ownerID uuid.UUID, params ListBookParams) (*book.Book, error)
}

type bookCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewBookCommands(uow shared.UnitOfWork) BookCommands {
	return &bookCommandsImpl{uow: uow}
}

func (c *bookCommandsImpl) ListBook(ctx context.Context, ownerID uuid.UUID, params ListBookParams) (*book.Book, error) {
	var created *book.Book
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, ownerID); err != nil {
			return mapNotFound(err, errs.ErrUserNotFound)
		}

		b, err := book.NewBook(
			params.Title,
			params.Author,
			book.Condition(params.Condition),
			params.Categories,
			ownerID,
			params.PriceCents,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		if err := tx.Books().Create(ctx, b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
