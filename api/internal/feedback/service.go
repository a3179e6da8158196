// Package feedback runs the essay pipeline for one trigger: read the essay
// page, ask the model for corrections, split the reply and write it back.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/llm"
	"essay-feedback/api/internal/notion"
	"essay-feedback/api/internal/util"
)

// maxLoggedText bounds essay and reply text in log lines.
const maxLoggedText = 4000

var (
	// ErrNoContent means the essay page produced no paragraph text.
	ErrNoContent = errors.New("essay page has no content")
	// ErrUpstream wraps transport failures of the document or completion service.
	ErrUpstream = errors.New("upstream call failed")
)

// Documents is the part of the Notion client the pipeline uses.
type Documents interface {
	GetPageContent(ctx context.Context, pageID string) (string, error)
	UpdateRichText(ctx context.Context, pageID string, props map[string]string) (notion.UpdateResult, error)
}

// Fields are the row property names receiving the three sections.
type Fields struct {
	Corrected   string
	Analysis    string
	Suggestions string
}

// Run describes one completed invocation.
type Run struct {
	TextPageID  string
	RowPageID   string
	Engine      string
	Model       string
	Degraded    bool
	WriteStatus int
	WriteOK     bool
	CreatedAt   time.Time
}

// RunLog persists completed runs.
type RunLog interface {
	Record(ctx context.Context, run Run) error
}

// Notifier announces completed runs.
type Notifier interface {
	Notify(ctx context.Context, run Run) error
}

// Request carries the trigger parameters.
type Request struct {
	TextPageID string
	RowPageID  string
	LLMName    string
}

type Service struct {
	docs     Documents
	engines  *llm.Engines
	fields   Fields
	keyed    bool
	runLog   RunLog
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithKeyedSplit selects label-keyed section extraction.
func WithKeyedSplit(keyed bool) Option {
	return func(s *Service) { s.keyed = keyed }
}

func WithRunLog(r RunLog) Option {
	return func(s *Service) { s.runLog = r }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(docs Documents, engines *llm.Engines, fields Fields, opts ...Option) *Service {
	s := &Service{
		docs:    docs,
		engines: engines,
		fields:  fields,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process runs the whole pipeline. Only an unknown engine, a missing essay
// and upstream transport failures are errors; a malformed reply or a failed
// write still completes the run.
func (s *Service) Process(ctx context.Context, req Request) (Run, error) {
	engine, err := s.engines.GetEngine(req.LLMName)
	if err != nil {
		return Run{}, err
	}

	content, err := s.docs.GetPageContent(ctx, req.TextPageID)
	if err != nil {
		return Run{}, fmt.Errorf("%w: read essay: %w", ErrUpstream, err)
	}
	if content == "" {
		return Run{}, ErrNoContent
	}
	s.log.Info("essay content", "text_page_id", req.TextPageID, "content", util.Truncate(content, maxLoggedText))

	sections, err := s.Correct(ctx, engine, content)
	if err != nil {
		return Run{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	run := Run{
		TextPageID: req.TextPageID,
		RowPageID:  req.RowPageID,
		Engine:     engine.Name(),
		Model:      engine.GetModel(),
		Degraded:   sections.IsDegraded(),
		CreatedAt:  s.now().UTC(),
	}

	res, err := s.WriteResult(ctx, req.RowPageID, sections)
	if err != nil {
		s.log.Error("notion update failed", "row_page_id", req.RowPageID, "error", err)
	}
	run.WriteStatus = res.StatusCode
	run.WriteOK = err == nil && res.OK()
	if !run.WriteOK {
		s.log.Warn("feedback not written", "row_page_id", req.RowPageID, "status", res.StatusCode)
	}

	s.report(ctx, run)
	return run, nil
}

// Correct asks engine to correct essayText and splits the reply into sections.
// A reply with fewer than three sections yields essay.Degraded, not an error.
func (s *Service) Correct(ctx context.Context, engine llm.Engine, essayText string) (essay.Sections, error) {
	reply, err := engine.Complete(ctx, essay.SystemPrompt, essay.BuildPrompt(essayText))
	if err != nil {
		return essay.Sections{}, err
	}
	s.log.Info("model reply", "engine", engine.Name(), "reply", util.Truncate(reply, maxLoggedText))

	sections := essay.Split(reply, s.keyed)
	if sections.IsDegraded() {
		s.log.Warn("model reply could not be split into sections", "engine", engine.Name(), "keyed", s.keyed)
	}
	return sections, nil
}

// WriteResult cleans the section labels off and writes the three values into the row.
func (s *Service) WriteResult(ctx context.Context, rowPageID string, sections essay.Sections) (notion.UpdateResult, error) {
	clean := sections.Clean()
	s.log.Info("writing feedback",
		"row_page_id", rowPageID,
		"corrected", clean.Corrected,
		"analysis", clean.Analysis,
		"suggestions", clean.Suggestions,
	)
	return s.docs.UpdateRichText(ctx, rowPageID, map[string]string{
		s.fields.Corrected:   clean.Corrected,
		s.fields.Analysis:    clean.Analysis,
		s.fields.Suggestions: clean.Suggestions,
	})
}

func (s *Service) report(ctx context.Context, run Run) {
	if s.runLog != nil {
		if err := s.runLog.Record(ctx, run); err != nil {
			s.log.Error("record run", "row_page_id", run.RowPageID, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, run); err != nil {
			s.log.Error("notify run", "row_page_id", run.RowPageID, "error", err)
		}
	}
}
