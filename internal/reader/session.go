// Package reader ties the document store, search engine and viewport
// controller into one session: the single context the UI talks to.
//
// A Session is owned by the UI goroutine. File loading is split so the
// slow half (Load) can run elsewhere and the result is installed with
// Adopt.
package reader

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
	"github.com/azario0/prototypes-txt-reader/internal/search"
	"github.com/azario0/prototypes-txt-reader/internal/tracing"
	"github.com/azario0/prototypes-txt-reader/internal/viewport"
)

// ErrNoFile is returned by Reload before any file has been opened.
var ErrNoFile = errors.New("no file open")

// Loaded describes a document that replaced the previous one.
type Loaded struct {
	Doc           *document.Document
	Gutter        viewport.Gutter
	GutterChanged bool
	Reload        bool
	Elapsed       time.Duration
}

// Options configure a Session.
type Options struct {
	Search     search.Options
	CountLimit int // cap for the match counter; 0 disables counting
	ViewHeight int
	Tracer     trace.Tracer
}

// Session is not safe for concurrent use.
type Session struct {
	doc    *document.Document
	engine *search.Engine
	cursor search.Cursor
	hl     search.MatchSpan
	hasHL  bool
	view   *viewport.Controller
	gutter viewport.Gutter
	events *pubsub.Broker[Loaded]
	tracer trace.Tracer

	countLimit  int
	matchCount  int
	countCapped bool
}

// New creates a session showing an empty document.
func New(opts Options) *Session {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracing.Noop().Tracer()
	}
	doc := document.FromString("", "")
	return &Session{
		doc:        doc,
		engine:     search.NewEngine(opts.Search),
		cursor:     search.NewCursor(),
		view:       viewport.NewController(doc.LineCount(), max(opts.ViewHeight, 1)),
		gutter:     viewport.RecomputeGutter(doc),
		events:     pubsub.NewBroker[Loaded](),
		tracer:     tracer,
		countLimit: opts.CountLimit,
	}
}

// Load reads path inside a span. It touches no session state and may run
// on any goroutine.
func Load(ctx context.Context, tracer trace.Tracer, path string) (*document.Document, error) {
	if tracer == nil {
		tracer = tracing.Noop().Tracer()
	}
	_, span := tracer.Start(ctx, tracing.SpanOpenFile, trace.WithAttributes(
		attribute.String(tracing.AttrFilePath, path),
	))
	defer span.End()

	doc, err := document.Load(path)
	if err != nil {
		recordError(span, err)
		log.ErrorErr(log.CatDoc, "load failed", err, "path", path)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrFileBytes, doc.ByteLen()),
		attribute.Int(tracing.AttrDocLines, doc.LineCount()),
		attribute.Int(tracing.AttrDocChars, doc.Len()),
		attribute.String(tracing.AttrDocID, doc.ID()),
	)
	span.SetStatus(codes.Ok, "")
	return doc, nil
}

// OpenFile loads path and, on success, makes it the current document.
// On failure the previous document stays.
func (s *Session) OpenFile(ctx context.Context, path string) (Loaded, error) {
	start := time.Now()
	doc, err := Load(ctx, s.tracer, path)
	if err != nil {
		return Loaded{}, err
	}
	loaded := s.Adopt(doc, false)
	loaded.Elapsed = time.Since(start)
	return loaded, nil
}

// Reload re-reads the current file and keeps the scroll position.
func (s *Session) Reload(ctx context.Context) (Loaded, error) {
	if s.doc.Path() == "" {
		return Loaded{}, ErrNoFile
	}
	ctx, span := s.tracer.Start(ctx, tracing.SpanReload)
	defer span.End()

	start := time.Now()
	doc, err := Load(ctx, s.tracer, s.doc.Path())
	if err != nil {
		recordError(span, err)
		return Loaded{}, err
	}
	loaded := s.Adopt(doc, true)
	loaded.Elapsed = time.Since(start)
	return loaded, nil
}

// Adopt replaces the document. The search cursor and highlight are reset,
// the gutter is resized and the view returns to the top unless
// keepPosition is set.
func (s *Session) Adopt(doc *document.Document, keepPosition bool) Loaded {
	prev := s.gutter
	s.doc = doc
	s.cursor = search.NewCursor()
	s.clearHighlight()
	s.matchCount, s.countCapped = 0, false
	s.gutter = viewport.RecomputeGutter(doc)
	if keepPosition {
		s.view.SetLineCount(doc.LineCount())
	} else {
		s.view.Reset(doc.LineCount())
	}

	loaded := Loaded{
		Doc:           doc,
		Gutter:        s.gutter,
		GutterChanged: s.gutter.Changed(prev),
		Reload:        keepPosition,
	}
	log.Info(log.CatDoc, "document adopted", "path", doc.Path(), "lines", doc.LineCount(), "reload", keepPosition)
	s.events.Publish(pubsub.LoadedEvent, loaded)
	return loaded
}

// SearchNext advances to the next match of term and scrolls it into view.
func (s *Session) SearchNext(ctx context.Context, term string) (search.Outcome, error) {
	return s.step(ctx, tracing.SpanSearchNext, term, s.engine.Next)
}

// SearchPrevious moves to the previous match of term and scrolls it into view.
func (s *Session) SearchPrevious(ctx context.Context, term string) (search.Outcome, error) {
	return s.step(ctx, tracing.SpanSearchPrevious, term, s.engine.Previous)
}

type stepFunc func(context.Context, *document.Document, search.Cursor, string) (search.Outcome, search.Cursor, error)

func (s *Session) step(ctx context.Context, name, term string, fn stepFunc) (search.Outcome, error) {
	if term == "" {
		return search.Outcome{}, nil
	}
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String(tracing.AttrSearchTerm, term),
		attribute.String(tracing.AttrDocID, s.doc.ID()),
	))
	defer span.End()

	termChanged := term != s.cursor.Term
	out, cur, err := fn(ctx, s.doc, s.cursor, term)
	if err != nil {
		recordError(span, err)
		if errors.Is(err, document.ErrOutOfRange) {
			log.ErrorErr(log.CatSearch, "match outside document", err, "term", term)
		} else {
			log.Warn(log.CatSearch, "search failed", "term", term, "error", err)
		}
		return out, err
	}
	s.cursor = cur
	if termChanged {
		s.recount(ctx, term)
	}

	span.SetAttributes(
		attribute.Bool(tracing.AttrSearchFound, out.Found),
		attribute.Bool(tracing.AttrSearchWrap, out.Wrapped),
	)
	if !out.Found {
		s.clearHighlight()
		return out, nil
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrMatchLine, out.Match.Start.Line),
		attribute.Int(tracing.AttrMatchColumn, out.Match.Start.Column),
		attribute.Int(tracing.AttrMatchLength, out.Match.Length),
	)
	s.hl, s.hasHL = out.Match, true
	s.view.OnJumpTo(out.Match)
	return out, nil
}

func (s *Session) recount(ctx context.Context, term string) {
	s.matchCount, s.countCapped = 0, false
	if s.countLimit <= 0 {
		return
	}
	n, capped, err := s.engine.CountMatches(ctx, s.doc, term, s.countLimit)
	if err != nil {
		log.Warn(log.CatSearch, "match count failed", "term", term, "error", err)
		return
	}
	s.matchCount, s.countCapped = n, capped
}

// SetIgnoreCase switches case sensitivity; the next search starts over.
func (s *Session) SetIgnoreCase(ignore bool) {
	s.engine.SetIgnoreCase(ignore)
	s.cursor = search.NewCursor()
	s.clearHighlight()
	s.matchCount, s.countCapped = 0, false
}

// IgnoreCase reports the current case sensitivity.
func (s *Session) IgnoreCase() bool { return s.engine.Options().IgnoreCase }

// OnUserScroll handles a scroll of the text view and returns the fraction
// every component now shows.
func (s *Session) OnUserScroll(fraction float64) float64 {
	return s.view.OnScroll(fraction).Fraction
}

// OnSliderDrag handles a slider move to value in [0,100].
func (s *Session) OnSliderDrag(value float64) float64 {
	return s.view.OnSliderMove(value).Fraction
}

// Resize sets the number of visible text rows.
func (s *Session) Resize(height int) viewport.State {
	return s.view.Resize(height)
}

func (s *Session) clearHighlight() {
	s.hl, s.hasHL = search.MatchSpan{}, false
}

// Document returns the current document.
func (s *Session) Document() *document.Document { return s.doc }

// Highlight returns the match currently highlighted, if any.
func (s *Session) Highlight() (search.MatchSpan, bool) { return s.hl, s.hasHL }

// Cursor returns the search cursor.
func (s *Session) Cursor() search.Cursor { return s.cursor }

// Viewport returns the viewport controller renderers subscribe to.
func (s *Session) Viewport() *viewport.Controller { return s.view }

// Gutter returns the current gutter geometry.
func (s *Session) Gutter() viewport.Gutter { return s.gutter }

// MatchCount returns the number of matches of the current term.
func (s *Session) MatchCount() (n int, capped bool) { return s.matchCount, s.countCapped }

// Events publishes a LoadedEvent whenever a document is adopted.
func (s *Session) Events() pubsub.Subscriber[Loaded] { return s.events }

// Tracer returns the tracer the session records spans with.
func (s *Session) Tracer() trace.Tracer { return s.tracer }

// Close releases event subscribers.
func (s *Session) Close() {
	s.events.Close()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(tracing.AttrErrorType, errorType(err)))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, document.ErrIO):
		return "io"
	case errors.Is(err, document.ErrDecode):
		return "decode"
	case errors.Is(err, search.ErrPattern):
		return "pattern"
	case errors.Is(err, document.ErrOutOfRange):
		return "out_of_range"
	default:
		return "other"
	}
}
