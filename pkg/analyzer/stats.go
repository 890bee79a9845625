package analyzer

import "sort"

// PartialStats accumulates counts from a single file. It is built by one
// worker and never shared, so it carries no locking.
type PartialStats struct {
	// SourceFile is the path this partial was built from.
	SourceFile string

	// PerHandler counts matched lines keyed by verbatim path, then level.
	PerHandler map[string]map[Level]int

	// PerMethod counts matched lines by method token. Server-error lines
	// carry no method and do not contribute here.
	PerMethod map[string]int

	// LevelsSeen is the set of levels observed on matched lines.
	LevelsSeen map[Level]struct{}

	// TotalLines counts every line seen, matched or not.
	TotalLines int

	// UnparsedLines counts lines that matched no rule.
	UnparsedLines int
}

// NewPartialStats returns an empty accumulator for the given source file.
func NewPartialStats(source string) *PartialStats {
	return &PartialStats{
		SourceFile: source,
		PerHandler: make(map[string]map[Level]int),
		PerMethod:  make(map[string]int),
		LevelsSeen: make(map[Level]struct{}),
	}
}

// RecordMatch folds one extracted record into the accumulator.
func (p *PartialStats) RecordMatch(rec RequestRecord) {
	p.TotalLines++
	levels, ok := p.PerHandler[rec.Path]
	if !ok {
		levels = make(map[Level]int)
		p.PerHandler[rec.Path] = levels
	}
	levels[rec.Level]++
	if rec.Method != "" {
		p.PerMethod[rec.Method]++
	}
	p.LevelsSeen[rec.Level] = struct{}{}
}

// RecordUnparsed counts a line that matched no extraction rule.
func (p *PartialStats) RecordUnparsed() {
	p.TotalLines++
	p.UnparsedLines++
}

// Requests returns the number of matched lines in this partial.
func (p *PartialStats) Requests() int {
	return p.TotalLines - p.UnparsedLines
}

// AggregateStats is the sum of any number of PartialStats. Merging is
// commutative and associative, and merging a fresh PartialStats is the
// identity, so partials can be folded in any arrival order.
type AggregateStats struct {
	PerHandler map[string]map[Level]int `json:"-" yaml:"-"`
	PerMethod  map[string]int           `json:"-" yaml:"-"`
	LevelsSeen map[Level]struct{}       `json:"-" yaml:"-"`

	// PerFileUnparsed records, per source file, how many lines matched no
	// rule. Files with zero unparsed lines are omitted. Hard read failures
	// are not represented here; those live in Report.Failures.
	PerFileUnparsed map[string]int `json:"-" yaml:"-"`

	TotalLines    int `json:"totalLines" yaml:"totalLines"`
	UnparsedLines int `json:"unparsedLines" yaml:"unparsedLines"`
}

// NewAggregateStats returns an empty aggregate.
func NewAggregateStats() *AggregateStats {
	return &AggregateStats{
		PerHandler:      make(map[string]map[Level]int),
		PerMethod:       make(map[string]int),
		LevelsSeen:      make(map[Level]struct{}),
		PerFileUnparsed: make(map[string]int),
	}
}

// Merge folds one file's partial into the aggregate.
func (a *AggregateStats) Merge(p *PartialStats) {
	for path, levels := range p.PerHandler {
		dst, ok := a.PerHandler[path]
		if !ok {
			dst = make(map[Level]int)
			a.PerHandler[path] = dst
		}
		for lv, n := range levels {
			dst[lv] += n
		}
	}
	for method, n := range p.PerMethod {
		a.PerMethod[method] += n
	}
	for lv := range p.LevelsSeen {
		a.LevelsSeen[lv] = struct{}{}
	}
	if p.UnparsedLines > 0 {
		a.PerFileUnparsed[p.SourceFile] += p.UnparsedLines
	}
	a.TotalLines += p.TotalLines
	a.UnparsedLines += p.UnparsedLines
}

// Combine folds another aggregate into this one. Used when intermediate
// aggregates are built independently and joined afterwards.
func (a *AggregateStats) Combine(other *AggregateStats) {
	for path, levels := range other.PerHandler {
		dst, ok := a.PerHandler[path]
		if !ok {
			dst = make(map[Level]int)
			a.PerHandler[path] = dst
		}
		for lv, n := range levels {
			dst[lv] += n
		}
	}
	for method, n := range other.PerMethod {
		a.PerMethod[method] += n
	}
	for lv := range other.LevelsSeen {
		a.LevelsSeen[lv] = struct{}{}
	}
	for file, n := range other.PerFileUnparsed {
		a.PerFileUnparsed[file] += n
	}
	a.TotalLines += other.TotalLines
	a.UnparsedLines += other.UnparsedLines
}

// Handlers returns all handler paths in sorted order for stable output.
func (a *AggregateStats) Handlers() []string {
	paths := make([]string, 0, len(a.PerHandler))
	for path := range a.PerHandler {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// SeenLevels returns the observed levels in canonical severity order.
func (a *AggregateStats) SeenLevels() []Level {
	out := make([]Level, 0, len(a.LevelsSeen))
	for _, lv := range Levels {
		if _, ok := a.LevelsSeen[lv]; ok {
			out = append(out, lv)
		}
	}
	return out
}

// HandlerCount returns the count for a handler/level pair, zero if absent.
func (a *AggregateStats) HandlerCount(path string, lv Level) int {
	return a.PerHandler[path][lv]
}

// TotalRequests returns the number of matched lines across all files.
func (a *AggregateStats) TotalRequests() int {
	return a.TotalLines - a.UnparsedLines
}
