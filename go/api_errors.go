package cartserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	cartsapp "github.com/Apurer/cartsync/internal/domains/carts/application"
	sessionapp "github.com/Apurer/cartsync/internal/domains/sessions/application"
	apierrors "github.com/Apurer/cartsync/internal/shared/errors"
)

// responder maps application errors to RFC 7807 problems.
var responder = apierrors.NewChainedResponder("", mapCartError, mapSessionError)

func mapCartError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartdomain.ErrQuantityLimitExceeded):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()).
			WithExtension("maxQuantity", cartdomain.MaxQuantityPerItem), true
	case errors.Is(err, cartsapp.ErrSelfPurchase):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, cartsapp.ErrLineNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapSessionError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, sessionapp.ErrUnauthenticated):
		return apierrors.ErrUnauthorized.WithDetail(sessionapp.ErrUnauthenticated.Error()), true
	case errors.Is(err, sessionapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBadRequest reports an undecodable request body.
func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// abortUnauthorized stops the chain with the "invalid token" problem.
func abortUnauthorized(c *gin.Context) {
	responder.Respond(c, apierrors.ErrUnauthorized.WithDetail(sessionapp.ErrUnauthenticated.Error()))
	c.Abort()
}
