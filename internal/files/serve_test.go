package files_test

import (
	"bufio"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shravanasati/filesrv/internal/files"
	"github.com/shravanasati/filesrv/internal/middleware"
	"github.com/shravanasati/filesrv/internal/resolve"
	"github.com/shravanasati/filesrv/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackDoc = "<h1>gone</h1>"

type site struct {
	base     string
	fallback string
}

func newSite(t *testing.T, contents map[string]string) site {
	t.Helper()
	s := site{base: t.TempDir(), fallback: filepath.Join(t.TempDir(), "public", "404.html")}
	for name, content := range contents {
		require.NoError(t, os.WriteFile(filepath.Join(s.base, name), []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(s.fallback), 0o755))
	require.NoError(t, os.WriteFile(s.fallback, []byte(fallbackDoc), 0o644))
	return s
}

func (st site) serve(t *testing.T, opts ...files.Option) *server.Server {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	resolver, err := resolve.New(st.base)
	require.NoError(t, err)

	opts = append([]files.Option{files.WithLogger(quiet)}, opts...)
	responder := files.NewResponder(resolver, st.fallback, opts...)
	handler := server.Chain(responder.Handle, middleware.Logging(quiet), middleware.RequestID)

	srv, err := server.Serve(server.ServerOpts{Address: "127.0.0.1:0", Logger: quiet}, handler)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

// get sends a raw GET so that targets like /../x reach the server unchanged.
func get(t *testing.T, srv *server.Server, target string) (*http.Response, string) {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = io.WriteString(conn, "GET "+target+" HTTP/1.1\r\nHost: localhost:4800\r\n\r\n")
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServeStylesheet(t *testing.T) {
	srv := newSite(t, map[string]string{"style.css": "body{}"}).serve(t)

	resp, body := get(t, srv, "/style.css")
	assert.Equal(t, "200 Success", resp.Status)
	assert.Equal(t, "text/css", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "body{}", body)
}

func TestServeMissingImage(t *testing.T) {
	srv := newSite(t, nil).serve(t)

	resp, body := get(t, srv, "/missing.png")
	assert.Equal(t, "404 Not Found", resp.Status)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	assert.Equal(t, fallbackDoc, body)
}

func TestServeRoot(t *testing.T) {
	srv := newSite(t, map[string]string{"index.html": "<h1>home</h1>"}).serve(t)

	resp, body := get(t, srv, "/")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	assert.Equal(t, "<h1>home</h1>", body)
}

func TestServeTraversal(t *testing.T) {
	st := newSite(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(st.base), "secret.txt"), []byte("secret"), 0o644))
	srv := st.serve(t)

	resp, body := get(t, srv, "/../secret.txt")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, fallbackDoc, body)
}

func TestServeSymlinkOutsideBase(t *testing.T) {
	st := newSite(t, nil)
	secret := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o644))
	if err := os.Symlink(secret, filepath.Join(st.base, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	srv := st.serve(t)

	resp, body := get(t, srv, "/link.txt")
	assert.Equal(t, "404 Not Found", resp.Status)
	assert.Equal(t, fallbackDoc, body)
}

func TestServeIsRepeatableAcrossLifetimes(t *testing.T) {
	st := newSite(t, map[string]string{"app.js": "let x = 1;"})

	first := st.serve(t)
	_, a := get(t, first, "/app.js")
	require.NoError(t, first.Close())

	second := st.serve(t)
	_, b := get(t, second, "/app.js")
	assert.Equal(t, a, b)
}

type faultyFS struct{}

func (faultyFS) ReadFile(string) ([]byte, error) {
	panic("simulated I/O fault")
}

func TestServeFatalStopsServer(t *testing.T) {
	srv := newSite(t, map[string]string{"index.html": "x"}).serve(t, files.WithFileSystem(faultyFS{}))

	resp, body := get(t, srv, "/index.html")
	assert.Equal(t, "500 Server Error", resp.Status)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message":"panic while handling request: simulated I/O fault"}`, body)

	select {
	case err := <-srv.Fatal():
		assert.ErrorIs(t, err, files.ErrPanic)
	case <-time.After(2 * time.Second):
		t.Fatal("no fatal error published")
	}

	assert.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", srv.Addr().String(), 100*time.Millisecond)
		if err == nil {
			conn.Close()
		}
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeMissingFallbackStopsServer(t *testing.T) {
	st := newSite(t, nil)
	require.NoError(t, os.Remove(st.fallback))
	srv := st.serve(t)

	resp, body := get(t, srv, "/nothing.html")
	assert.Equal(t, 500, resp.StatusCode)
	assert.Contains(t, body, `"message":"fallback document: `)

	err := <-srv.Fatal()
	assert.ErrorIs(t, err, files.ErrFallback)
}
