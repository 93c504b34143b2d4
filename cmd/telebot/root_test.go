package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maine/telebot/internal/state"
)

const testToken = "123456:CLI-secret"

const benderMessage = `{"message_id":12,"chat":{"id":7},"date":1700000000,"from":{"id":42,"first_name":"Bender"},"text":"hi"}`

// fakeAPI отвечает заранее заданными телами и запоминает вызванные методы.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	methods   []string
	bodies    []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.methods = append(f.methods, method)
	f.bodies = append(f.bodies, string(body))
	resp, ok := f.responses[method]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		resp = `{"ok":false,"error_code":404,"description":"Not Found"}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func setupCLI(t *testing.T, responses map[string]string) (*fakeAPI, string) {
	t.Helper()

	api := &fakeAPI{responses: responses}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bot.yaml")
	cfg := "telegram:\n  api_url: " + srv.URL + "\nstate:\n  path: " + filepath.Join(dir, "state.json") + "\nlog:\n  level: error\n  color: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	t.Setenv("TELEGRAM_BOT_TOKEN", testToken)
	t.Setenv("TELEBOT_CONFIG", "")
	return api, cfgPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_me(t *testing.T) {
	api, cfg := setupCLI(t, map[string]string{
		"getMe": `{"ok":true,"result":{"id":42,"first_name":"Bender","last_name":"Rodriguez","username":"bender_bot"}}`,
	})

	out, err := runCLI(t, "me", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Bender Rodriguez")
	assert.Contains(t, out, "@bender_bot")
	assert.Equal(t, []string{"getMe"}, api.methods)
}

func TestCLI_jsonOutput(t *testing.T) {
	_, cfg := setupCLI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":` + benderMessage + `}`,
	})

	out, err := runCLI(t, "send-message", "7", "hi", "--json", "--config", cfg)
	require.NoError(t, err)

	var got struct {
		MessageID int64 `json:"message_id"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(12), got.MessageID)
	assert.Equal(t, int64(7), got.Chat.ID)
	assert.Equal(t, "hi", got.Text)
}

func TestCLI_sendPhoto(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "bender_pic.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg bytes"), 0644))

	api, cfg := setupCLI(t, map[string]string{
		"sendPhoto": `{"ok":true,"result":{"message_id":13,"chat":{"id":7},"date":1700000001,"photo":[{"file_id":"AgAD","width":90,"height":60}]}}`,
	})

	out, err := runCLI(t, "send-photo", "7", photo, "--caption", "shiny", "--content-type", "image/jpeg", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Message 13")
	assert.Contains(t, out, "AgAD")

	require.Len(t, api.bodies, 1)
	assert.Contains(t, api.bodies[0], `filename="bender_pic.jpg"`)
	assert.Contains(t, api.bodies[0], "jpeg bytes")
	assert.Contains(t, api.bodies[0], "shiny")
}

func TestCLI_sendAudioByFileID(t *testing.T) {
	api, cfg := setupCLI(t, map[string]string{
		"sendAudio": `{"ok":true,"result":{"message_id":14,"chat":{"id":7},"date":1700000002,"audio":{"file_id":"AwAD","duration":3}}}`,
	})

	_, err := runCLI(t, "send-audio", "7", "AwAD", "--file-id", "--config", cfg)
	require.NoError(t, err)

	require.Len(t, api.bodies, 1)
	assert.Contains(t, api.bodies[0], "audio=AwAD")
}

func TestCLI_errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		_, cfg := setupCLI(t, map[string]string{
			"forwardMessage": `{"ok":false,"error_code":400,"description":"Bad Request: message to forward not found"}`,
		})

		_, err := runCLI(t, "forward", "7", "7", "99", "--config", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "message to forward not found")
		assert.NotContains(t, err.Error(), testToken)
	})

	t.Run("invalid chat id", func(t *testing.T) {
		api, cfg := setupCLI(t, nil)

		_, err := runCLI(t, "send-message", "seven", "hi", "--config", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid chat id")
		assert.Empty(t, api.methods)
	})

	t.Run("missing file is reported before any request", func(t *testing.T) {
		api, cfg := setupCLI(t, nil)

		_, err := runCLI(t, "send-document", "7", filepath.Join(t.TempDir(), "nope.pdf"), "--config", cfg)
		require.Error(t, err)
		assert.Empty(t, api.methods)
	})

	t.Run("missing token", func(t *testing.T) {
		_, cfg := setupCLI(t, nil)
		t.Setenv("TELEGRAM_BOT_TOKEN", "")

		_, err := runCLI(t, "me", "--config", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
	})
}

func TestCLI_broadcast(t *testing.T) {
	api, cfg := setupCLI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":` + benderMessage + `}`,
	})

	statePath := filepath.Join(filepath.Dir(cfg), "state.json")
	require.NoError(t, state.NewFileStore(statePath).Save(context.Background(), state.State{
		LastUpdateID: 5,
		Recipients: []state.Recipient{
			{Name: "fry", ChatID: 7, UpdatedAt: time.Now()},
			{Name: "leela", ChatID: 8, UpdatedAt: time.Now()},
		},
	}))

	out, err := runCLI(t, "broadcast", "Good news, everyone!", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 2/2")
	assert.Equal(t, []string{"sendMessage", "sendMessage"}, api.methods)
}

func TestCLI_sendMessageSplit(t *testing.T) {
	api, cfg := setupCLI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":` + benderMessage + `}`,
	})

	out, err := runCLI(t, "send-message", "7", strings.Repeat("b", 5000), "--split", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"sendMessage", "sendMessage"}, api.methods)
	assert.Equal(t, 2, strings.Count(out, "Message 12"))
}
