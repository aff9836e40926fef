package operator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/warden-social/warden/gate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleChannelRoundTrip(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var out bytes.Buffer
	in := strings.NewReader("remove\nwarn\n")

	g := gate.NewGate(slog.Default(), nil, time.Second)
	console := NewConsoleChannel(&out, in, g)
	g.Notifier = console

	h1, err := g.Open(ctx, gate.Request{ContentID: "POST-002", Operator: "mod-johnson", Prompt: "review POST-002"})
	require.NoError(t, err)
	h2, err := g.Open(ctx, gate.Request{ContentID: "POST-003", Operator: "mod-johnson", Prompt: "review POST-003"})
	require.NoError(t, err)

	go console.Run(ctx)

	resp, err := h1.Await(ctx)
	require.NoError(t, err)
	assert.Equal("remove", resp.Text)
	assert.Equal("mod-johnson", resp.Operator)
	g.Close(h1)

	resp, err = h2.Await(ctx)
	require.NoError(t, err)
	assert.Equal("warn", resp.Text)
	g.Close(h2)

	assert.Contains(out.String(), "review POST-002")
	assert.Contains(out.String(), "mod-johnson, what action should be taken?")
}

func TestSlackChannelPublish(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		gotBody = buf.String()
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	ch := &SlackChannel{WebhookURL: srv.URL}
	err := ch.Publish(ctx, gate.Request{ContentID: "POST-002", Operator: "mod-johnson", Prompt: "review required"})
	assert.NoError(err)
	assert.Contains(gotBody, "POST-002")
	assert.Contains(gotBody, "mod-johnson")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer bad.Close()

	ch = &SlackChannel{WebhookURL: bad.URL}
	err = ch.Publish(ctx, gate.Request{ContentID: "POST-002", Operator: "mod-johnson"})
	assert.Error(err)
}

func TestMultiChannel(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var a, b bytes.Buffer
	multi := MultiChannel{
		NewConsoleChannel(&a, strings.NewReader(""), nil),
		NewConsoleChannel(&b, strings.NewReader(""), nil),
	}

	err := multi.Publish(ctx, gate.Request{ContentID: "POST-001", Operator: "mod-a", Prompt: "check this"})
	assert.NoError(err)
	assert.Contains(a.String(), "check this")
	assert.Contains(b.String(), "check this")
}
