package template

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed tmpl/*.html
var files embed.FS

//go:embed static
var static embed.FS

const (
	templateDir string = "tmpl"
)

// Data is the common part of every page.
type Data struct {
	PageTitle string
	Phone     string
	Error     string
	Body      any
}

// Static serves the embedded stylesheet and images under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static", http.FileServer(http.FS(sub)))
}

var funcs = template.FuncMap{
	"money": Money,
	"dmy":   DMY,
	"str":   deref,
	"when":  when,
}

// Render executes tmpl inside base.html and writes it with status.
func Render(w http.ResponseWriter, r *http.Request, status int, tmpl string, td *Data) error {
	t, err := template.New(tmpl).Funcs(funcs).ParseFS(files,
		templateDir+"/"+tmpl,
		templateDir+"/"+"base.html",
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.Execute(buf, td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// Money formats rubles without kopecks, grouped the Russian way.
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return message.NewPrinter(language.Russian).Sprintf("%v ₽", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// DMY turns YYYY-MM-DD into DD.MM.YYYY, leaving other input untouched.
func DMY(ymd string) string {
	if ymd == "" {
		return "—"
	}
	parts := strings.Split(ymd, "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ymd
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func when(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("02.01.2006 15:04")
}
