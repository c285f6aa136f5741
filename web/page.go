package web

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"lautenbacher.net/lavalamp/lamp"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Night Light</title>
<style>
body { font-family: sans-serif; text-align: center; background: #222; color: #eee; }
a.button { display: inline-block; margin: 4px; padding: 10px 16px; border-radius: 6px; background: #555; color: #fff; text-decoration: none; }
a.active { background: #2a7; }
.swatch { display: inline-block; width: 3em; height: 3em; border-radius: 50%; border: 1px solid #888; }
</style>
</head>
<body>
<h1>Night Light Web Server</h1>
<p>MODE - {{.ColorPlanName}}{{if .BrightnessPlans}} - {{.BrightnessPlanName}}{{end}}</p>
<p><span class="swatch" style="{{.Swatch}}"></span></p>
<p>{{range $i, $name := .ColorPlans}}<a class="button{{if eq $i $.ColorPlan}} active{{end}}" href="/m/{{$i}}">{{$name}}</a>{{end}}</p>
{{if .BrightnessPlans}}<p>{{range $i, $name := .BrightnessPlans}}<a class="button{{if eq $i $.BrightnessPlan}} active{{end}}" href="/b/{{$i}}">{{$name}}</a>{{end}}</p>{{end}}
</body>
</html>
`))

type pageData struct {
	lamp.State
	Swatch template.CSS
}

func renderPage(w io.Writer, st lamp.State) error {
	return pageTemplate.Execute(w, pageData{
		State:  st,
		Swatch: template.CSS("background-color: " + st.Current.Hex()),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Can't write JSON response", "error", err)
	}
}
