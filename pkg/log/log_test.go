package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	SetupTestLogger()

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
	})

	return &buf
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContextInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	ctx = WithBusinessID(ctx, "biz-1")

	ForContext(ctx).WithFields(Fields{"remote_addr": "10.0.0.1", "run_id": "abc"}).Info("mensagem")

	output := buf.String()
	assert.Contains(t, output, id)
	assert.Contains(t, output, "biz-1")
	assert.Contains(t, output, "run_id=abc")
	assert.NotContains(t, output, "remote_addr")
}

func TestWithFieldsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	L.WithFields(Fields{"remote_addr": "10.0.0.1"}).Info("mensagem")

	assert.Contains(t, buf.String(), "remote_addr=10.0.0.1")
}
