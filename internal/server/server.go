package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
	"github.com/olehluchkiv/artistpairs/internal/report"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>artistpairs: {{.Input}}</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      flex-direction: column;
      align-items: center;
      min-height: 100vh;
      padding: 1rem;
      background-color: #f8f9fa;
      color: #212529;
    }

    @media (prefers-color-scheme: dark) {
      body {
        background-color: #1a1a2e;
        color: #e0e0e0;
      }
      table th { background-color: #2d2d44; }
      table td, table th { border-color: #444; }
    }

    h1 {
      margin: 1rem 0;
      font-size: 1.4rem;
      font-weight: 600;
    }

    h2 {
      margin: 1.5rem 0 0.5rem;
      font-size: 1.1rem;
      font-weight: 600;
    }

    .summary {
      display: flex;
      gap: 1.5rem;
      flex-wrap: wrap;
      justify-content: center;
      margin-bottom: 1rem;
    }

    .summary .stat { text-align: center; }
    .summary .stat .value { font-size: 1.3rem; font-weight: 600; }
    .summary .stat .label { font-size: 0.8rem; opacity: 0.7; }

    .graph-viewport {
      width: 100%;
      overflow: auto;
      display: flex;
      justify-content: center;
      padding: 1rem;
    }

    .tables {
      display: flex;
      gap: 2rem;
      flex-wrap: wrap;
      justify-content: center;
    }

    table { border-collapse: collapse; min-width: 18rem; }
    table th, table td { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: left; }
    table th { background-color: #e9ecef; }
    table td.count { text-align: right; font-variant-numeric: tabular-nums; }

    .mermaid svg .nodeLabel { font-size: 16px !important; }
    .mermaid svg .edgeLabel { font-size: 14px !important; }
  </style>
</head>
<body>
  <h1>Artist pairs in at least {{.Result.Threshold}} lists</h1>

  <div class="summary">
    <div class="stat"><div class="value">{{.Result.Groups}}</div><div class="label">lists</div></div>
    <div class="stat"><div class="value">{{.Result.DistinctArtists}}</div><div class="label">artists</div></div>
    <div class="stat"><div class="value">{{.Result.Candidates}}</div><div class="label">frequent artists</div></div>
    <div class="stat"><div class="value">{{len .Result.Pairs}}</div><div class="label">frequent pairs</div></div>
  </div>

  {{if .Result.Pairs}}
  <div class="graph-viewport">
    <pre class="mermaid">{{.Mermaid}}</pre>
  </div>
  {{end}}

  <div class="tables">
    <div>
      <h2>Pairs</h2>
      <table>
        <tr><th>First</th><th>Second</th><th>Lists</th></tr>
        {{range .Result.Pairs}}<tr><td>{{.Pair.First}}</td><td>{{.Pair.Second}}</td><td class="count">{{.Count}}</td></tr>
        {{else}}<tr><td colspan="3">No pair reaches the threshold.</td></tr>{{end}}
      </table>
    </div>
    <div>
      <h2>Artists</h2>
      <table>
        <tr><th>Artist</th><th>Lists</th></tr>
        {{range .Result.Artists}}<tr><td>{{.Name}}</td><td class="count">{{.Count}}</td></tr>
        {{else}}<tr><td colspan="2">No artist reaches the threshold.</td></tr>{{end}}
      </table>
    </div>
  </div>

  <script src="https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"></script>
  <script>
    mermaid.initialize({ startOnLoad: true, theme: 'base', flowchart: { useMaxWidth: true } });
  </script>
</body>
</html>
`

// Page is everything the viewer renders for one run.
type Page struct {
	Input   string
	Result  *cooccur.Result
	Mermaid string
}

// NewPage prepares the viewer data for a finished run.
func NewPage(input string, result *cooccur.Result, opts report.MermaidOptions) Page {
	return Page{
		Input:   input,
		Result:  result,
		Mermaid: report.GenerateMermaid(result, opts),
	}
}

// NewHandler builds the routes for page. When gatherer is nil /metrics is
// not served.
func NewHandler(page Page, gatherer prometheus.Gatherer, logger *slog.Logger) (http.Handler, error) {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML template: %w", err)
	}

	doc, err := json.Marshal(report.NewDocument(page.Result))
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, page); err != nil {
			logger.Error("failed to render template", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/report.json", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(doc)
	})

	mux.HandleFunc("/graph.mmd", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(page.Mermaid))
	})

	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return mux, nil
}

// Serve starts the HTTP server for page.
// It blocks until the context is cancelled.
func Serve(ctx context.Context, page Page, port int, openBrowser bool, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	logger = logger.With("component", "server")

	handler, err := NewHandler(page, gatherer, logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("starting HTTP server", "addr", url)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(errCh)
	}()

	if openBrowser {
		openInBrowser(url, logger)
	}

	// Block until the context is cancelled or the server fails.
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	}
}

// openInBrowser opens the given URL in the default system browser.
func openInBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		logger.Warn("unsupported platform for opening browser", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}
