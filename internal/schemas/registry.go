package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Names of the schemas that constrain structured generation output.
const (
	Profile              = "profile"
	WorkHistory          = "work_history"
	SkillsCerts          = "skills_certs"
	RewrittenWorkHistory = "rewritten_work_history"
)

// Schema is a named JSON Schema document from the registry.
type Schema struct {
	Name     string
	Document string

	compiled *gojsonschema.Schema
}

var (
	cache   = make(map[string]Schema)
	cacheMu sync.RWMutex
)

// Get returns the schema registered under name.
func Get(name string) (Schema, error) {
	cacheMu.RLock()
	if s, ok := cache[name]; ok {
		cacheMu.RUnlock()
		return s, nil
	}
	cacheMu.RUnlock()

	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return Schema{}, &SchemaLoadError{Path: name, Message: "schema not registered", Cause: err}
	}

	compiled, err := compile(name, string(data))
	if err != nil {
		return Schema{}, err
	}
	s := Schema{Name: name, Document: string(data), compiled: compiled}

	cacheMu.Lock()
	cache[name] = s
	cacheMu.Unlock()

	return s, nil
}

// MustGet returns the schema registered under name, panicking if it is missing.
func MustGet(name string) Schema {
	s, err := Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load schema: %v", err))
	}
	return s
}

// Names lists every registered schema, sorted.
func Names() []string {
	entries, err := schemaFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".schema.json"))
	}
	sort.Strings(names)
	return names
}

// FormatInstructions renders the text appended to a prompt so the model answers with a
// document that conforms to the schema.
func (s Schema) FormatInstructions() string {
	var sb strings.Builder
	sb.WriteString("The output should be formatted as a JSON instance that conforms to the JSON schema below.\n")
	sb.WriteString("Write every value as a JSON string, including dates and years. Use null for information that is not present.\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Here is the output schema:\n```\n")
	sb.WriteString(strings.TrimSpace(s.Document))
	sb.WriteString("\n```")
	return sb.String()
}
