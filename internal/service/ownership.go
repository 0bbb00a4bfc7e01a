package service

import (
	"context"
	"errors"

	"github.com/academyhq/academy-service/internal/auth"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/repository"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// resolveOwned loads an owner-scoped resource and confirms identity may mutate it.
// A missing resource is NotFound; a foreign one is Forbidden.
func resolveOwned[T any](
	ctx context.Context,
	identity domain.Identity,
	resource string,
	id int64,
	load func(context.Context, int64) (*T, error),
	ownerOf func(*T) int64,
) (*T, error) {
	item, err := load(ctx, id)
	if err != nil {
		return nil, lookupError(resource, id, err)
	}
	if !auth.CanMutate(identity, ownerOf(item), auth.OwnershipOverrideRoles()) {
		return nil, apperrors.NewForbidden("only the owner may modify this " + resource)
	}
	return item, nil
}

func lookupError(resource string, id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewInternalError(err)
}

// writeError converts repository write failures into domain errors.
func writeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict("resource already exists", nil)
	case errors.Is(err, repository.ErrInvalidReference):
		return apperrors.NewValidationError("referenced resource does not exist", nil)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("resource", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
