package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsFailuresWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := WithRequestID(context.Background(), "abc-123")

	func() (err error) {
		defer Time(ctx, "test.op")(&err)
		return errors.New("boom")
	}()

	entries := logs.FilterMessage("operation failed").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "abc-123", fields["req_id"])
		assert.Equal(t, "test.op", fields["op"])
		assert.Equal(t, "boom", fields["error"])
	}
}

func TestTimeSuccessIsDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	func() (err error) {
		defer Time(context.Background(), "ok.op")(&err)
		return nil
	}()

	entries := logs.FilterMessage("operation done").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "", RequestID(context.Background()))
	}
}
