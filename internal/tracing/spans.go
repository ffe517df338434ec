package tracing

// Span names.
const (
	SpanOpenFile       = "reader.open_file"
	SpanReload         = "reader.reload"
	SpanSearchNext     = "reader.search_next"
	SpanSearchPrevious = "reader.search_previous"
)

// Span attribute keys.
const (
	AttrFilePath    = "file.path"
	AttrFileBytes   = "file.bytes"
	AttrDocID       = "document.id"
	AttrDocLines    = "document.lines"
	AttrDocChars    = "document.chars"
	AttrSearchTerm  = "search.term"
	AttrSearchFound = "search.found"
	AttrSearchWrap  = "search.wrapped"
	AttrMatchLine   = "match.line"
	AttrMatchColumn = "match.column"
	AttrMatchLength = "match.length"
	AttrErrorType   = "error.type"
)
