// Package llm selects the chat-completion engine used for essay correction.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownEngine is returned by GetEngine for names that were never registered.
var ErrUnknownEngine = errors.New("unknown llm engine")

// Engine sends one system + user message pair and returns the reply text.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Engines maps engine names to engines. It is filled once at startup and only read afterwards.
type Engines struct {
	def string
	m   map[string]Engine
}

func NewEngines(defaultName string, engs ...Engine) *Engines {
	e := &Engines{
		def: normalize(defaultName),
		m:   make(map[string]Engine, len(engs)),
	}
	for _, eng := range engs {
		if eng != nil {
			e.m[normalize(eng.Name())] = eng
		}
	}
	return e
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "gpt" {
		return "openai"
	}
	return name
}

// GetEngine returns the engine registered under llmName, or the default engine when llmName is empty.
func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := normalize(llmName)
	if name == "" {
		name = e.def
	}
	if eng, ok := e.m[name]; ok {
		return eng, nil
	}
	return nil, fmt.Errorf("%w %q; use one of %s", ErrUnknownEngine, llmName, strings.Join(e.Names(), ", "))
}

// Names lists the registered engines in sorted order.
func (e *Engines) Names() []string {
	out := make([]string, 0, len(e.m))
	for k := range e.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
