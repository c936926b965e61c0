// Package preview runs a local live-reload server that compiles markdown
// and MDX files on the fly, so authors can see rendered output and
// validation diagnostics before uploading anything.
package preview

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/folio-sh/folio/internal/mdx"
)

// page is one compiled document plus its validation state.
type page struct {
	Slug     string
	Title    string
	Compiled *mdx.CompiledContent
	Result   mdx.ValidationResult
}

// Server watches a content directory and serves compiled previews.
type Server struct {
	dir       string
	processor *mdx.Processor
	hub       *Hub

	mu    sync.RWMutex
	pages map[string]*page
}

// NewServer builds a preview server over dir. Validation runs with the
// default component registry and options.
func NewServer(dir string) *Server {
	return &Server{
		dir:       dir,
		processor: mdx.NewProcessor(nil, mdx.DefaultOptions()),
		hub:       NewHub(),
		pages:     make(map[string]*page),
	}
}

// Run compiles everything once, starts the file watcher, and serves HTTP
// on addr until the listener fails.
func (s *Server) Run(addr string) error {
	if err := s.compileAll(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}
	go s.watch(watcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.ServeWs)
	mux.HandleFunc("/", s.handlePage)

	log.Printf("preview: serving %s on http://%s", s.dir, addr)
	return http.ListenAndServe(addr, mux)
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func slugFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Server) compileAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isContentFile(entry.Name()) {
			continue
		}
		s.compileFile(filepath.Join(s.dir, entry.Name()))
	}
	return nil
}

// compileFile compiles one file into the page map. Compile failures still
// produce a page so the browser can show the diagnostics.
func (s *Server) compileFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("preview: reading %s: %v", path, err)
		return
	}

	raw := string(data)
	result := s.processor.Validate(raw)
	compiled, err := s.processor.Compile(raw)
	if err != nil {
		log.Printf("preview: compiling %s: %v", path, err)
	}

	pg := &page{
		Slug:     slugFor(path),
		Compiled: compiled,
		Result:   result,
	}
	if compiled != nil {
		if t, ok := compiled.Metadata["title"].(string); ok {
			pg.Title = t
		}
	}
	if pg.Title == "" {
		pg.Title = pg.Slug
	}

	s.mu.Lock()
	s.pages[pg.Slug] = pg
	s.mu.Unlock()
}

func (s *Server) removeFile(path string) {
	s.mu.Lock()
	delete(s.pages, slugFor(path))
	s.mu.Unlock()
}

// watch reacts to filesystem events. Rapid event bursts (editors write,
// rename and chmod in quick succession) are debounced before recompiling.
func (s *Server) watch(watcher *fsnotify.Watcher) {
	const debounce = 500 * time.Millisecond

	var (
		timer   *time.Timer
		pending = make(map[string]fsnotify.Op)
		mu      sync.Mutex
	)

	flush := func() {
		mu.Lock()
		batch := pending
		pending = make(map[string]fsnotify.Op)
		mu.Unlock()

		for path, op := range batch {
			if op&fsnotify.Remove != 0 || op&fsnotify.Rename != 0 {
				s.removeFile(path)
			} else {
				s.compileFile(path)
			}
		}
		s.hub.Broadcast(map[string]any{"type": "reload"})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isContentFile(event.Name) {
				continue
			}
			mu.Lock()
			pending[event.Name] |= event.Op
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					mu.Lock()
					timer = nil
					mu.Unlock()
					flush()
				})
			} else {
				timer.Reset(debounce)
			}
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("preview: watcher: %v", err)
		}
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(r.URL.Path, "/")
	if slug == "" {
		s.handleIndex(w, r)
		return
	}

	s.mu.RLock()
	pg, ok := s.pages[slug]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>", html.EscapeString(pg.Title))
	writeDiagnostics(w, pg.Result)
	if pg.Compiled != nil {
		fmt.Fprint(w, pg.Compiled.HTML)
		fmt.Fprintf(w, `<hr><p><small>%d words, %d min read</small></p>`,
			pg.Compiled.WordCount, pg.Compiled.ReadingTime)
	}
	fmt.Fprint(w, liveReloadScript)
	fmt.Fprint(w, "</body></html>")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	slugs := make([]string, 0, len(s.pages))
	for slug := range s.pages {
		slugs = append(slugs, slug)
	}
	s.mu.RUnlock()
	sort.Strings(slugs)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><html><head><title>folio preview</title></head><body><h1>Preview</h1><ul>")
	for _, slug := range slugs {
		fmt.Fprintf(w, `<li><a href="/%s">%s</a></li>`, slug, html.EscapeString(slug))
	}
	fmt.Fprint(w, "</ul>")
	fmt.Fprint(w, liveReloadScript)
	fmt.Fprint(w, "</body></html>")
}

func writeDiagnostics(w http.ResponseWriter, result mdx.ValidationResult) {
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		return
	}
	fmt.Fprint(w, `<div style="border:1px solid #c00;padding:8px;margin-bottom:16px;font-family:monospace">`)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "<div>[%s/%s] %s</div>", e.Severity, e.Kind, html.EscapeString(e.Message))
	}
	for _, e := range result.Warnings {
		fmt.Fprintf(w, "<div>[%s/%s] %s</div>", e.Severity, e.Kind, html.EscapeString(e.Message))
	}
	fmt.Fprint(w, "</div>")
}

const liveReloadScript = `<script>
(function() {
	var ws = new WebSocket("ws://" + location.host + "/ws");
	ws.onmessage = function(ev) {
		var msg = JSON.parse(ev.data);
		if (msg.type === "reload") location.reload();
	};
	ws.onclose = function() {
		setTimeout(function() { location.reload(); }, 1000);
	};
})();
</script>`
