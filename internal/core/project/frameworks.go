package project

import (
	"sort"
	"strings"
)

// frameworkMapping maps a dependency name to a framework display name.
// A Dependency ending in ':' or '.' matches as a prefix.
type frameworkMapping struct {
	Dependency string
	Framework  string
}

// frameworksByEcosystem maps dependency names to framework tags per ecosystem.
var frameworksByEcosystem = map[string][]frameworkMapping{
	"npm": {
		{"next", "Next.js"},
		{"react", "React"},
		{"vue", "Vue"},
		{"nuxt", "Nuxt"},
		{"@angular/core", "Angular"},
		{"svelte", "Svelte"},
		{"@sveltejs/kit", "SvelteKit"},
		{"express", "Express"},
		{"fastify", "Fastify"},
		{"@nestjs/core", "NestJS"},
		{"electron", "Electron"},
		{"react-native", "React Native"},
	},
	"go": {
		{"github.com/gin-gonic/gin", "Gin"},
		{"github.com/labstack/echo", "Echo"},
		{"github.com/gofiber/fiber", "Fiber"},
		{"github.com/go-chi/chi", "Chi"},
		{"github.com/spf13/cobra", "Cobra"},
		{"google.golang.org/grpc", "gRPC"},
		{"github.com/charmbracelet/bubbletea", "Bubble Tea"},
	},
	"pypi": {
		{"fastapi", "FastAPI"},
		{"django", "Django"},
		{"flask", "Flask"},
		{"streamlit", "Streamlit"},
		{"torch", "PyTorch"},
		{"tensorflow", "TensorFlow"},
		{"typer", "Typer"},
		{"click", "Click"},
	},
	"cargo": {
		{"actix-web", "Actix"},
		{"axum", "Axum"},
		{"rocket", "Rocket"},
		{"tokio", "Tokio"},
		{"bevy", "Bevy"},
		{"clap", "Clap"},
	},
	"maven": {
		{"org.springframework.boot:", "Spring Boot"},
		{"io.quarkus:", "Quarkus"},
		{"io.micronaut:", "Micronaut"},
	},
	"gradle": {
		{"org.springframework.boot:", "Spring Boot"},
		{"io.ktor:", "Ktor"},
		{"androidx.", "Android"},
	},
	"rubygems": {
		{"rails", "Rails"},
		{"sinatra", "Sinatra"},
	},
	"composer": {
		{"laravel/framework", "Laravel"},
		{"symfony/framework-bundle", "Symfony"},
	},
	"pub": {
		{"flutter", "Flutter"},
	},
}

// matches reports whether a dependency name selects this mapping.
func (fm frameworkMapping) matches(name string) bool {
	if strings.HasSuffix(fm.Dependency, ":") || strings.HasSuffix(fm.Dependency, ".") {
		return strings.HasPrefix(name, fm.Dependency)
	}
	// Go modules may carry a major version suffix such as /v4.
	return name == fm.Dependency || strings.HasPrefix(name, fm.Dependency+"/")
}

// detectFrameworks returns the sorted, unique framework tags implied by deps.
func detectFrameworks(deps []Dependency) []string {
	seen := make(map[string]bool)
	for _, d := range deps {
		for _, fm := range frameworksByEcosystem[d.Ecosystem] {
			if fm.matches(d.Name) {
				seen[fm.Framework] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
