package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigileye/vigil/internal/domain/port"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	id := uuid.New()
	require.NoError(t, n.Notify(context.Background(), port.Notification{
		AlertID:   id,
		KindredID: "kid-1",
		Title:     "Vigil alert: high risk",
		Body:      "Flagged: meet me.",
	}))

	out := buf.String()
	assert.Contains(t, out, id.String())
	assert.Contains(t, out, `"title":"Vigil alert: high risk"`)
}
