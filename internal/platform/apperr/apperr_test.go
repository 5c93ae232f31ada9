package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("submit: %w", Wrap(KindStoreWrite, "journal.Submit", cause))

	assert.ErrorIs(t, err, ErrStoreWrite)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStoreRead)
	assert.Equal(t, KindStoreWrite, KindOf(err))
}

func TestKindOf_UnknownIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "content is required", Message(Validation("journal.Submit", "content is required")))
	assert.Equal(t, "invalid json", Message(Wrap(KindParse, "decode", errors.New("eof"))))
	assert.Equal(t, "internal error", Message(errors.New("boom")))
}

func TestError_String(t *testing.T) {
	err := WrapMsg(KindOracle, "journal.annotate", "empty response", errors.New("no choices"))
	assert.Equal(t, "journal.annotate: oracle_error: empty response: no choices", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindParse:        http.StatusBadRequest,
		KindValidation:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindRateLimited:  http.StatusTooManyRequests,
		KindOracle:       http.StatusBadGateway,
		KindStoreWrite:   http.StatusInternalServerError,
		KindStoreRead:    http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, HTTPStatus(k), "kind %s", k)
	}
}
