package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/stt"
)

func TestClientTranscribe(t *testing.T) {
	var loaded string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		switch r.URL.Path {
		case "/load":
			loaded = r.FormValue("model")
			_, _ = w.Write([]byte(`{}`))
		case "/inference":
			require.Equal(t, "verbose_json", r.FormValue("response_format"))
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			require.Equal(t, "note.wav", hdr.Filename)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"text":     "  um remind me to call John  ",
				"language": "en",
				"duration": 2.5,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "note.wav")
	require.NoError(t, os.WriteFile(audio, []byte("RIFF"), 0o600))

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	ctx := context.Background()

	_, err := c.TranscribeFile(ctx, audio)
	require.ErrorIs(t, err, stt.ErrNotLoaded)

	require.NoError(t, c.Load(ctx, "models/ggml-base.en-q5_0.bin"))
	require.Equal(t, "models/ggml-base.en-q5_0.bin", loaded)

	tr, err := c.TranscribeFile(ctx, audio)
	require.NoError(t, err)
	require.Equal(t, stt.Transcript{Text: "um remind me to call John", Language: "en", DurationSeconds: 2.5}, tr)

	require.NoError(t, c.Unload(ctx))
	_, err = c.TranscribeFile(ctx, audio)
	require.ErrorIs(t, err, stt.ErrNotLoaded)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model missing", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	err := c.Load(context.Background(), "nope.bin")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestClientMissingAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	require.NoError(t, c.Load(context.Background(), "m.bin"))
	_, err := c.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "absent.wav"))
	require.Error(t, err)
}
