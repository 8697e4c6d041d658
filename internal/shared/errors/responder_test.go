package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOutOfStock = errors.New("out of stock")

func serve(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/v1/cart", func(c *gin.Context) { r.RespondError(c, err) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

	problem, ok := ParseProblem(rec.Body.Bytes())
	require.True(t, ok)
	return rec, *problem
}

func TestResponder_UsesMappersInOrder(t *testing.T) {
	r := NewChainedResponder("https://carts.example",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errOutOfStock) {
				return ErrUnprocessable.WithDetail(err.Error()), true
			}
			return ProblemDetail{}, false
		},
		func(error) (ProblemDetail, bool) { return ErrForbidden, true },
	)

	rec, problem := serve(t, r, fmt.Errorf("add: %w", errOutOfStock))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://carts.example"+TypeUnprocessable, problem.Type)
	assert.Equal(t, "add: out of stock", problem.Detail)
	assert.Equal(t, "/v1/cart", problem.Instance)
}

func TestResponder_FallsBackToEmbeddedProblemThenInternal(t *testing.T) {
	r := NewChainedResponder("")

	rec, problem := serve(t, r, fmt.Errorf("wrapped: %w", ErrNotFound.WithDetail("no cart")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no cart", problem.Detail)

	rec, problem = serve(t, r, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := ErrUnprocessable.WithExtension("maxQuantity", 10)
	derived := base.WithExtension("itemId", "A")

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)

	raw, err := json.Marshal(derived)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"maxQuantity":10`)
}

func TestParseProblem_RejectsNonProblems(t *testing.T) {
	_, ok := ParseProblem([]byte(`{"success":false,"message":"nope"}`))
	assert.False(t, ok)
	_, ok = ParseProblem([]byte(`upstream down`))
	assert.False(t, ok)
}
