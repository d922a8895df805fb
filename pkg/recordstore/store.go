package recordstore

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "recordbook/recordstore"

// Record is implemented by every entity kept in a Store.
// Key returns the identity field used for lookups; Clone must return a deep copy.
type Record[T any] interface {
	Key() string
	Validate() error
	Clone() T
}

// Codec converts a record to and from one line of a flat file.
type Codec[T any] interface {
	Encode(r T) string
	Decode(line string) (T, error)
}

// LoadResult summarizes a LoadFromFile call.
type LoadResult struct {
	Loaded  int
	Skipped int
}

// Store is an ordered, in-memory collection of records.
// It is owned by a single caller and is not safe for concurrent use.
type Store[T Record[T]] struct {
	name    string
	records []T
	inPlace bool
	strict  bool
	logger  *slog.Logger
	fault   FaultInjector
	tracer  trace.Tracer
	added   metric.Int64Counter
	skipped metric.Int64Counter
}

type options struct {
	name    string
	inPlace bool
	strict  bool
	logger  *slog.Logger
	fault   FaultInjector
	meters  metric.MeterProvider
}

// Option configures a Store.
type Option func(*options)

// WithName labels spans, metrics and log lines emitted by the store.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithInPlaceUpdates keeps an updated record at its original position
// instead of moving it to the end of the collection.
func WithInPlaceUpdates() Option {
	return func(o *options) { o.inPlace = true }
}

// WithStrictLoad makes LoadFromFile fail on the first malformed line.
func WithStrictLoad() Option {
	return func(o *options) { o.strict = true }
}

// WithLogger sets the logger used for soft outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMeterProvider sets the provider for the store counters.
// The global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meters = mp }
}

// New creates an empty store.
func New[T Record[T]](opts ...Option) *Store[T] {
	o := options{name: "records"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.meters == nil {
		o.meters = otel.GetMeterProvider()
	}

	meter := o.meters.Meter(instrumentationName)
	added, err := meter.Int64Counter("recordstore.records.added",
		metric.WithDescription("Records appended to a store"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		added = noop.Int64Counter{}
	}
	skipped, err := meter.Int64Counter("recordstore.lines.skipped",
		metric.WithDescription("Malformed lines dropped while loading"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		skipped = noop.Int64Counter{}
	}

	return &Store[T]{
		name:    o.name,
		inPlace: o.inPlace,
		strict:  o.strict,
		logger:  o.logger.With("store", o.name),
		fault:   o.fault,
		tracer:  otel.Tracer(instrumentationName),
		added:   added,
		skipped: skipped,
	}
}

// Name returns the store label.
func (s *Store[T]) Name() string { return s.name }

// Len returns the number of records.
func (s *Store[T]) Len() int { return len(s.records) }

// Add validates r and appends a copy of it. Identity keys are not checked for uniqueness.
func (s *Store[T]) Add(ctx context.Context, r T) error {
	ctx, span := s.tracer.Start(ctx, "recordstore.add",
		trace.WithAttributes(
			attribute.String("store.name", s.name),
			attribute.String("record.key", r.Key()),
		),
	)
	defer span.End()

	if err := r.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return err
	}
	if err := s.inject(OpAdd); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "add failed")
		return err
	}

	s.records = append(s.records, r.Clone())
	s.added.Add(ctx, 1, metric.WithAttributes(attribute.String("store.name", s.name)))
	span.SetAttributes(attribute.Int("store.size", len(s.records)))
	return nil
}

// FindAll returns a lazy sequence of copies of the records matching pred.
// The sequence is evaluated again on every iteration. A nil pred matches everything.
func (s *Store[T]) FindAll(pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, r := range s.records {
			c := r.Clone()
			if pred != nil && !pred(c) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// All returns a copy of every record in iteration order.
func (s *Store[T]) All() []T {
	return slices.Collect(s.FindAll(nil))
}

// At returns a copy of the record at zero-based position i.
func (s *Store[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(s.records) {
		return zero, false
	}
	return s.records[i].Clone(), true
}

// Find returns the first record matching pred.
func (s *Store[T]) Find(pred func(T) bool) (T, bool) {
	for r := range s.FindAll(pred) {
		return r, true
	}
	var zero T
	return zero, false
}

// FindByKey returns the first record whose key case-insensitively equals key.
func (s *Store[T]) FindByKey(key string) (T, bool) {
	return s.Find(KeyEquals[T](key))
}

// UpdateFirst replaces the first record matching pred with the record built by fn.
// fn receives a copy of the current record. When nothing matches, ok is false and the
// store is unchanged. When fn or validation fails, the store is unchanged.
func (s *Store[T]) UpdateFirst(ctx context.Context, pred func(T) bool, fn func(T) (T, error)) (updated T, ok bool, err error) {
	_, span := s.tracer.Start(ctx, "recordstore.update",
		trace.WithAttributes(
			attribute.String("store.name", s.name),
			attribute.Bool("update.in_place", s.inPlace),
		),
	)
	defer span.End()

	idx := s.index(pred)
	if idx < 0 {
		span.SetAttributes(attribute.Bool("record.found", false))
		s.logger.Debug("update skipped: no matching record")
		return updated, false, nil
	}

	next, err := fn(s.records[idx].Clone())
	if err == nil {
		err = next.Validate()
	}
	if err == nil {
		err = s.inject(OpUpdate)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update rejected")
		return updated, true, err
	}

	next = next.Clone()
	if s.inPlace {
		s.records[idx] = next
	} else {
		s.records = slices.Delete(s.records, idx, idx+1)
		s.records = append(s.records, next)
	}

	span.SetAttributes(
		attribute.Bool("record.found", true),
		attribute.String("record.key", next.Key()),
	)
	return next.Clone(), true, nil
}

// UpdateByKey is UpdateFirst keyed on the record identity.
func (s *Store[T]) UpdateByKey(ctx context.Context, key string, fn func(T) (T, error)) (T, bool, error) {
	updated, ok, err := s.UpdateFirst(ctx, KeyEquals[T](key), fn)
	if !ok {
		s.logger.Debug("record not found", "key", key)
	}
	return updated, ok, err
}

// DeleteFirst removes the first record matching pred and returns it.
func (s *Store[T]) DeleteFirst(ctx context.Context, pred func(T) bool) (T, bool) {
	_, span := s.tracer.Start(ctx, "recordstore.delete",
		trace.WithAttributes(attribute.String("store.name", s.name)),
	)
	defer span.End()

	var zero T
	idx := s.index(pred)
	if idx < 0 {
		span.SetAttributes(attribute.Bool("record.found", false))
		return zero, false
	}

	removed := s.records[idx]
	s.records = slices.Delete(s.records, idx, idx+1)
	span.SetAttributes(
		attribute.Bool("record.found", true),
		attribute.String("record.key", removed.Key()),
	)
	return removed, true
}

// DeleteByKey removes the first record whose key case-insensitively equals key.
func (s *Store[T]) DeleteByKey(ctx context.Context, key string) (T, bool) {
	removed, ok := s.DeleteFirst(ctx, KeyEquals[T](key))
	if !ok {
		s.logger.Debug("record not found", "key", key)
	}
	return removed, ok
}

// Clear drops every record.
func (s *Store[T]) Clear() {
	s.records = nil
}

// Truncate drops every record past the first n. It undoes appends made after Len
// returned n. A negative n is treated as zero.
func (s *Store[T]) Truncate(n int) {
	n = max(n, 0)
	if n < len(s.records) {
		clear(s.records[n:])
		s.records = s.records[:n]
	}
}

// SaveToFile truncates path and writes every record as one line.
func (s *Store[T]) SaveToFile(ctx context.Context, path string, codec Codec[T]) (err error) {
	_, span := s.tracer.Start(ctx, "recordstore.save",
		trace.WithAttributes(
			attribute.String("store.name", s.name),
			attribute.String("file.path", path),
			attribute.Int("record.count", len(s.records)),
		),
	)
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "save failed")
		}
	}()

	if err := s.inject(OpSave); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save %s: %w", s.name, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, r := range s.records {
		if _, err := w.WriteString(codec.Encode(r)); err != nil {
			return fmt.Errorf("save %s: %w", s.name, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("save %s: %w", s.name, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	return nil
}

// LoadFromFile appends the records decoded from path to the store.
// Lines that fail to decode or validate are skipped, unless the store was built
// WithStrictLoad, in which case nothing is appended and a *ParseError is returned.
// A missing file yields an error wrapping fs.ErrNotExist.
func (s *Store[T]) LoadFromFile(ctx context.Context, path string, codec Codec[T]) (LoadResult, error) {
	ctx, span := s.tracer.Start(ctx, "recordstore.load",
		trace.WithAttributes(
			attribute.String("store.name", s.name),
			attribute.String("file.path", path),
			attribute.Bool("load.strict", s.strict),
		),
	)
	defer span.End()

	var res LoadResult
	if err := s.inject(OpLoad); err != nil {
		span.RecordError(err)
		return res, err
	}
	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return res, fmt.Errorf("load %s: %w", s.name, err)
	}
	defer f.Close()

	var loaded []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		rec, err := codec.Decode(line)
		if err == nil {
			err = rec.Validate()
		}
		if err != nil {
			if s.strict {
				perr := &ParseError{Line: lineNo, Err: err}
				span.RecordError(perr)
				span.SetStatus(codes.Error, "malformed line")
				return LoadResult{}, perr
			}
			res.Skipped++
			s.logger.Debug("skipping malformed line", "line", lineNo, "error", err)
			continue
		}
		loaded = append(loaded, rec)
	}
	if err := scanner.Err(); err != nil {
		span.RecordError(err)
		return LoadResult{}, fmt.Errorf("load %s: %w", s.name, err)
	}

	s.records = append(s.records, loaded...)
	res.Loaded = len(loaded)
	if res.Skipped > 0 {
		s.skipped.Add(ctx, int64(res.Skipped), metric.WithAttributes(attribute.String("store.name", s.name)))
	}
	span.SetAttributes(
		attribute.Int("records.loaded", res.Loaded),
		attribute.Int("lines.skipped", res.Skipped),
	)
	return res, nil
}

func (s *Store[T]) index(pred func(T) bool) int {
	return slices.IndexFunc(s.records, func(r T) bool { return pred(r.Clone()) })
}
