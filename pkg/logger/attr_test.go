package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calckit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("form", slog.String("name", "cutting"), slog.Int("fields", 12))
	require.Equal(t, "form", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "name", g[0].Key)
	assert.Equal(t, "fields", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.True(t, logger.Calculator("beam").Equal(slog.String("calculator", "beam")))
	assert.True(t, logger.Field("thickness").Equal(slog.String("field", "thickness")))
	assert.True(t, logger.Template("quantity").Equal(slog.String("template", "quantity")))
	assert.True(t, logger.Component("api").Equal(slog.String("component", "api")))
	assert.True(t, logger.Duration(time.Second).Equal(slog.Duration("duration", time.Second)))

	fields := logger.Fields([]string{"a", "b"})
	assert.Equal(t, "fields", fields.Key)
	assert.Equal(t, []string{"a", "b"}, fields.Value.Any())
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
