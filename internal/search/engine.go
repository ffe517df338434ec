// Package search runs incremental forward and backward regular-expression
// search over a document, one match per step.
//
// Matches form a canonical sequence: the leftmost match from the document
// start, then each next match scanned from the end of the previous one
// (one character further after an empty match). Forward and backward steps
// walk that same sequence, so they are exact inverses.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/azario0/prototypes-txt-reader/internal/cachemanager"
	"github.com/azario0/prototypes-txt-reader/internal/document"
	"github.com/azario0/prototypes-txt-reader/internal/log"
)

const (
	DefaultMatchTimeout = 2 * time.Second
	DefaultCacheTTL     = 10 * time.Minute
)

// Options configure pattern compilation.
type Options struct {
	IgnoreCase   bool
	MatchTimeout time.Duration
	CacheTTL     time.Duration
}

type patternKey string

type patternInput struct {
	term       string
	ignoreCase bool
}

// Engine compiles terms and scans documents. It keeps no per-document
// state; callers thread a Cursor through each step.
type Engine struct {
	opts     Options
	patterns *cachemanager.ReadThroughCache[patternKey, *regexp2.Regexp, patternInput]
}

// NewEngine creates an engine with its own pattern cache.
func NewEngine(opts Options) *Engine {
	if opts.MatchTimeout <= 0 {
		opts.MatchTimeout = DefaultMatchTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	e := &Engine{opts: opts}
	e.patterns = cachemanager.NewReadThroughCache[patternKey, *regexp2.Regexp, patternInput](
		cachemanager.NewInMemoryCacheManager[patternKey, *regexp2.Regexp]("patterns", opts.CacheTTL, cachemanager.DefaultCleanupInterval),
		e.compile,
		opts.CacheTTL,
	)
	return e
}

// Options returns the engine's current options.
func (e *Engine) Options() Options { return e.opts }

// SetIgnoreCase switches case sensitivity for subsequent steps.
func (e *Engine) SetIgnoreCase(ignore bool) { e.opts.IgnoreCase = ignore }

// CacheStats reports pattern cache usage.
func (e *Engine) CacheStats() cachemanager.Stats {
	return e.patterns.Cache().Stats()
}

func (e *Engine) compile(_ context.Context, in patternInput) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.Multiline)
	if in.ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(in.term, opts)
	if err != nil {
		return nil, &PatternError{Term: in.term, Err: err}
	}
	re.MatchTimeout = e.opts.MatchTimeout
	log.Debug(log.CatSearch, "compiled pattern", "term", in.term, "ignore_case", in.ignoreCase)
	return re, nil
}

func (e *Engine) pattern(ctx context.Context, term string) (*regexp2.Regexp, error) {
	in := patternInput{term: term, ignoreCase: e.opts.IgnoreCase}
	key := patternKey("s:" + term)
	if in.ignoreCase {
		key = patternKey("i:" + term)
	}
	return e.patterns.Get(ctx, key, in)
}

// Next finds the first match at or after the cursor.
// An empty term is a no-op: NotFound with the cursor unchanged. An empty
// document has no matches, not even empty ones. On any error the cursor is
// returned unchanged.
func (e *Engine) Next(ctx context.Context, doc *document.Document, cur Cursor, term string) (Outcome, Cursor, error) {
	if term == "" {
		return Outcome{}, cur, nil
	}
	re, err := e.pattern(ctx, term)
	if err != nil {
		return Outcome{}, cur, err
	}

	next := cur.forTerm(term, Forward)
	if doc.Len() == 0 {
		return Outcome{}, next.exhausted(AnchorStart), nil
	}
	from := 0
	switch next.Anchor {
	case AnchorEnd:
		from = doc.Len() + 1
	case AnchorMatch:
		from = next.Match.resume()
	}

	span, found, err := e.firstFrom(re, doc, from)
	if err != nil {
		return Outcome{}, cur, e.matchErr(term, err)
	}
	if !found {
		log.Debug(log.CatSearch, "no more matches forward", "term", term)
		return Outcome{}, next.exhausted(AnchorStart), nil
	}
	out := Outcome{Found: true, Match: span, Wrapped: next.Wrapped}
	return out, next.at(span), nil
}

// Previous finds the last match starting before the cursor's match.
// It mirrors Next.
func (e *Engine) Previous(ctx context.Context, doc *document.Document, cur Cursor, term string) (Outcome, Cursor, error) {
	if term == "" {
		return Outcome{}, cur, nil
	}
	re, err := e.pattern(ctx, term)
	if err != nil {
		return Outcome{}, cur, err
	}

	prev := cur.forTerm(term, Backward)
	if doc.Len() == 0 {
		return Outcome{}, prev.exhausted(AnchorEnd), nil
	}
	bound := doc.Len() + 1
	switch prev.Anchor {
	case AnchorStart:
		bound = 0
	case AnchorMatch:
		bound = prev.Match.Offset
	}

	span, found, err := e.lastBefore(ctx, re, doc, bound)
	if err != nil {
		return Outcome{}, cur, e.matchErr(term, err)
	}
	if !found {
		log.Debug(log.CatSearch, "no more matches backward", "term", term)
		return Outcome{}, prev.exhausted(AnchorEnd), nil
	}
	out := Outcome{Found: true, Match: span, Wrapped: prev.Wrapped}
	return out, prev.at(span), nil
}

// CountMatches counts canonical matches of term, stopping at limit when
// limit > 0. capped reports that the limit was reached.
func (e *Engine) CountMatches(ctx context.Context, doc *document.Document, term string, limit int) (count int, capped bool, err error) {
	if term == "" {
		return 0, false, nil
	}
	re, err := e.pattern(ctx, term)
	if err != nil || doc.Len() == 0 {
		return 0, false, err
	}
	m, err := re.FindRunesMatchStartingAt(doc.Runes(), 0)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		count++
		if limit > 0 && count >= limit {
			return count, true, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return count, false, cerr
		}
	}
	if err != nil {
		return count, false, e.matchErr(term, err)
	}
	return count, false, nil
}

func (e *Engine) firstFrom(re *regexp2.Regexp, doc *document.Document, from int) (MatchSpan, bool, error) {
	if from > doc.Len() {
		return MatchSpan{}, false, nil
	}
	m, err := re.FindRunesMatchStartingAt(doc.Runes(), from)
	if err != nil || m == nil {
		return MatchSpan{}, false, err
	}
	span, err := spanOf(doc, m.Index, m.Length)
	return span, err == nil, err
}

// lastBefore walks the canonical sequence up to bound. Backward steps are
// linear in the document; regexp2's RightToLeft mode would find a
// different set of matches.
func (e *Engine) lastBefore(ctx context.Context, re *regexp2.Regexp, doc *document.Document, bound int) (MatchSpan, bool, error) {
	if bound <= 0 {
		return MatchSpan{}, false, nil
	}
	var last *regexp2.Match
	m, err := re.FindRunesMatchStartingAt(doc.Runes(), 0)
	for ; m != nil && err == nil && m.Index < bound; m, err = re.FindNextMatch(m) {
		last = m
		if cerr := ctx.Err(); cerr != nil {
			return MatchSpan{}, false, cerr
		}
	}
	if err != nil {
		return MatchSpan{}, false, err
	}
	if last == nil {
		return MatchSpan{}, false, nil
	}
	span, err := spanOf(doc, last.Index, last.Length)
	return span, err == nil, err
}

func spanOf(doc *document.Document, offset, length int) (MatchSpan, error) {
	start, err := doc.OffsetToPosition(offset)
	if err != nil {
		return MatchSpan{}, err
	}
	end, err := doc.Advance(start, length)
	if err != nil {
		return MatchSpan{}, err
	}
	return MatchSpan{
		Start:     start,
		End:       end,
		Offset:    offset,
		EndOffset: offset + length,
		Length:    length,
	}, nil
}

// matchErr turns a scan failure into a PatternError. regexp2 reports
// timeouts with a plain error whose text embeds the whole input, so the
// message is never logged or kept.
func (e *Engine) matchErr(term string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if strings.HasPrefix(err.Error(), "match timeout") {
		log.Warn(log.CatSearch, "match timeout", "term", term, "timeout", e.opts.MatchTimeout)
		return &PatternError{Term: term, Timeout: true, Err: ErrTimeout}
	}
	return err
}
