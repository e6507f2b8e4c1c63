package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	PageLoginRegister,
	PageHome,
	PageRoom,
	PageProfile,
	PageRoomForm,
	PageDelete,
	PageUpdateUser,
	PageTopics,
	PageActivity,
}

// Renderer renders the HTML pages.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (r *Renderer, err error) {
	r = &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		var t *template.Template
		t, err = template.New("layout.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			err = fmt.Errorf("failed to parse template %s: %w", page, err)
			return
		}
		r.templates[page] = t
	}
	return
}

func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data interface{}) {
	t, ok := r.templates[page]
	if !ok {
		zap.L().Error("unknown page", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		zap.L().Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var funcs = template.FuncMap{
	"since": since,
}

// since formats the time elapsed since t the way activity feeds do.
func since(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
