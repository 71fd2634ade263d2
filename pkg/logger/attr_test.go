package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/croissant676/shopizer/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("non-nil error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})

	t.Run("nil error returns empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("skips nil errors", func(t *testing.T) {
		t.Parallel()
		attr := logger.Errors(errors.New("one"), nil, errors.New("two"))
		assert.Equal(t, "errors", attr.Key)
		assert.Len(t, attr.Value.Group(), 2)
	})

	t.Run("all nil returns empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	})
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("store", logger.StoreID(12), logger.StoreCode("DEFAULT"))
	assert.Equal(t, "store", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(12), logger.StoreID(12).Value.Int64())
	assert.Equal(t, "DEFAULT", logger.StoreCode("DEFAULT").Value.String())
	assert.Equal(t, "fr", logger.Language("fr").Value.String())
	assert.Equal(t, "12_CONTENT-fr", logger.CacheKey("12_CONTENT-fr").Value.String())
	assert.Equal(t, slog.Attr{}, logger.CustomerID(nil))
	assert.Equal(t, slog.Attr{}, logger.RequestID(nil))
}
