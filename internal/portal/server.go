// Package portal serves the captive configuration form used during
// provisioning. A client that connects to the module's access point
// is shown a form prepopulated with any existing settings; posting it
// hands a Submission back to the provisioning controller.
package portal

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sweeney/multisensor/internal/sensor"
)

// ErrTimeout is returned by Wait when the portal times out with no
// save.
var ErrTimeout = errors.New("portal: timed out without a save")

// Submission holds the values posted from the configuration form.
type Submission struct {
	// SSID and WifiPassword are the host network credentials, handed
	// to the wireless collaborator rather than persisted here.
	SSID         string
	WifiPassword string

	ServerName    string
	ServerPort    int
	Username      string
	Password      string
	Topic         string
	PropertyNames [sensor.NumSwitches]string
}

// Server serves the configuration form over HTTP.
type Server struct {
	httpServer *http.Server
	prefill    Submission
	submitted  chan Submission
}

// New creates a Server whose form is prepopulated from prefill.
func New(addr string, prefill Submission) *Server {
	s := &Server{
		prefill:   prefill,
		submitted: make(chan Submission, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	mux.HandleFunc("/save", s.handleSave)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut
// down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Wait blocks until a submission arrives, the timeout elapses, or the
// context is cancelled.
func (s *Server) Wait(ctx context.Context, timeout time.Duration) (Submission, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case sub := <-s.submitted:
		return sub, nil
	case <-t.C:
		return Submission{}, ErrTimeout
	case <-ctx.Done():
		return Submission{}, ctx.Err()
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderForm(w, s.prefill)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	port := 1883
	if p := r.FormValue("port"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			http.Error(w, "invalid port", http.StatusBadRequest)
			return
		}
		port = n
	}

	sub := Submission{
		SSID:         r.FormValue("ssid"),
		WifiPassword: r.FormValue("wifipass"),
		ServerName:   r.FormValue("server"),
		ServerPort:   port,
		Username:     r.FormValue("user"),
		Password:     r.FormValue("pass"),
		Topic:        r.FormValue("topic"),
	}
	for i := range sub.PropertyNames {
		sub.PropertyNames[i] = r.FormValue("prop" + strconv.Itoa(i))
	}

	// Only the first save counts; the controller restarts the device
	// after consuming it.
	select {
	case s.submitted <- sub:
	default:
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderSaved(w)
}

// Runner serves the form on Addr for a single provisioning session.
type Runner struct {
	Addr string
}

// Run serves the configuration form until a submission arrives, the
// timeout elapses, or the context is cancelled.
func (r Runner) Run(ctx context.Context, prefill Submission, timeout time.Duration) (Submission, error) {
	srv := New(r.Addr, prefill)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("portal: http server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	return srv.Wait(ctx, timeout)
}
