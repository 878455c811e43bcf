package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.service
var templatesFS embed.FS

// SystemdCoredData holds parameters for the cored service unit
type SystemdCoredData struct {
	User      string
	CoredPath string
	Home      string
}

// SystemdCosmovisorData holds parameters for the cosmovisor service unit
type SystemdCosmovisorData struct {
	User           string
	CosmovisorPath string
	Home           string
	// DaemonHome is the per-network directory cosmovisor manages.
	DaemonHome string
}

// RenderCoredService renders the unit running cored directly
func RenderCoredService(data SystemdCoredData) (string, error) {
	return renderTemplate("cored.service", data)
}

// RenderCosmovisorService renders the unit running cored under cosmovisor
func RenderCosmovisorService(data SystemdCosmovisorData) (string, error) {
	return renderTemplate("cosmovisor.service", data)
}

var funcs = template.FuncMap{
	"execArg":  execArg,
	"envValue": envValue,
}

// systemd expands %-specifiers everywhere and $-variables in ExecStart lines.
var (
	execEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "%", "%%", "$", "$$")
	envEscaper  = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "%", "%%")
)

// execArg renders s as a single ExecStart argument. Plain paths pass
// through; paths with whitespace, quotes or backslashes are double-quoted.
func execArg(s string) string {
	escaped := execEscaper.Replace(s)
	if strings.ContainsAny(s, " \t\n\"'\\;") {
		return `"` + escaped + `"`
	}
	return escaped
}

// envValue escapes s for use inside a double-quoted Environment= assignment.
func envValue(s string) string {
	return envEscaper.Replace(s)
}

// renderTemplate is a helper that renders any template from the embedded FS
func renderTemplate(name string, data interface{}) (string, error) {
	tmplBytes, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return buf.String(), nil
}
