package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	json "github.com/goccy/go-json"

	truemapper "github.com/iuliansilitra/TrueMapper"
	"github.com/iuliansilitra/TrueMapper/pkg/logger"
	"github.com/iuliansilitra/TrueMapper/profile"
	"github.com/iuliansilitra/TrueMapper/shape"
)

// Mapper maps object graphs between types. It holds configuration, the
// profile store and metrics, but no traversal state, so a single Mapper is
// safe for concurrent use.
type Mapper struct {
	opts    *truemapper.Options
	store   *profile.Store
	metrics *truemapper.Metrics
	log     *logger.Logger
}

// New creates a Mapper with the given options. A non-default ShapeCacheSize
// resizes the process-wide descriptor cache shared by all mappers; see
// WithShapeCacheSize.
func New(opts ...truemapper.Option) *Mapper {
	o := truemapper.DefaultOptions().Apply(opts...)
	if o.ShapeCacheSize != truemapper.DefaultOptions().ShapeCacheSize {
		shape.SetCacheCapacity(o.ShapeCacheSize)
	}
	return &Mapper{
		opts:    o,
		store:   profile.NewStore(),
		metrics: truemapper.NewMetrics(),
		log:     logger.Default(),
	}
}

// Options returns the mapper's configuration. Callers may adjust it between
// calls but must not mutate it while a mapping is in flight.
func (m *Mapper) Options() *truemapper.Options {
	return m.opts
}

// Profiles returns the profile store consumed by this mapper.
func (m *Mapper) Profiles() *profile.Store {
	return m.store
}

// Metrics returns the mapper's metrics accumulator.
func (m *Mapper) Metrics() *truemapper.Metrics {
	return m.metrics
}

// SetLogger replaces the logger used for debug diagnostics.
func (m *Mapper) SetLogger(l *logger.Logger) {
	if l != nil {
		m.log = l
	}
}

// CreateMap returns the fluent rule builder for the (S, D) pair, creating
// or extending its profile.
func CreateMap[S, D any](m *Mapper) *profile.Builder[S, D] {
	return profile.Configure[S, D](m.store)
}

// Map maps src into the value dst points at, mutating and keeping the
// existing instance. dst must be a non-nil pointer. The returned error is
// always one of the usage errors in the root package; value-level failures
// degrade to defaults instead.
func (m *Mapper) Map(ctx context.Context, src, dst any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return truemapper.ErrNotPointer
	}

	var start time.Time
	collect := m.opts.CollectMetrics
	if collect {
		start = time.Now()
	}

	tc := acquireTraversal()
	defer releaseTraversal(tc)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok && errors.Is(e, truemapper.ErrUnsupportedShape) {
					err = e
					return
				}
				panic(r)
			}
		}()
		return m.mapRoot(ctx, reflect.ValueOf(src), dv.Elem(), tc)
	}()

	if collect {
		m.metrics.RecordMapping(time.Since(start), tc.cycles, tc.truncations, tc.skipped)
		m.metrics.RecordMemorySample()
	}
	return err
}

// MapNew maps src into a freshly allocated destination of type D.
func MapNew[D any](ctx context.Context, m *Mapper, src any) (D, error) {
	var out D
	err := m.Map(ctx, src, &out)
	return out, err
}

// Clone maps v onto its own shape, producing a best-effort copy.
// Composites and containers are rebuilt member by member and element by
// element; scalar members are aliased where directly compatible.
func Clone[T any](ctx context.Context, m *Mapper, v T) (T, error) {
	return MapNew[T](ctx, m, v)
}

// MapSlice maps each element of the source sequence independently into a
// []D. An absent source element yields an absent entry at the same
// position, never a skipped one.
func MapSlice[D any](ctx context.Context, m *Mapper, src any) ([]D, error) {
	sv, err := sequenceValue(src)
	if err != nil || !sv.IsValid() {
		return nil, err
	}

	out := make([]D, sv.Len())
	for i := 0; i < sv.Len(); i++ {
		ev := sv.Index(i)
		if absentElement(ev) {
			continue
		}
		if err := m.Map(ctx, ev.Interface(), &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MapSliceParallel is MapSlice with the elements fanned out over the
// mapper's worker pool. Every element is a fully independent top-level
// mapping with its own traversal context, so order of execution cannot
// affect results; the output order matches the input.
func MapSliceParallel[D any](ctx context.Context, m *Mapper, src any) ([]D, error) {
	sv, err := sequenceValue(src)
	if err != nil || !sv.IsValid() {
		return nil, err
	}

	n := sv.Len()
	out := make([]D, n)
	errs := make([]error, n)
	tasks := make([]func(), 0, n)
	for i := 0; i < n; i++ {
		ev := sv.Index(i)
		if absentElement(ev) {
			continue
		}
		i, src := i, ev.Interface()
		tasks = append(tasks, func() {
			errs[i] = m.Map(ctx, src, &out[i])
		})
	}
	runTasks(m.opts.WorkerCount, tasks)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FromJSON decodes a JSON document and maps the result into dst. Objects
// map member-wise onto composite destinations, arrays map element-wise onto
// container destinations.
func (m *Mapper) FromJSON(ctx context.Context, data []byte, dst any) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("truemapper: decoding json: %w", err)
	}
	return m.Map(ctx, v, dst)
}

// sequenceValue resolves src to a slice or array value. A nil source
// resolves to the invalid value with no error, mirroring the null handling
// of single-object mapping.
func sequenceValue(src any) (reflect.Value, error) {
	sv := reflect.ValueOf(src)
	for sv.IsValid() && (sv.Kind() == reflect.Interface || sv.Kind() == reflect.Pointer) {
		if sv.IsNil() {
			return reflect.Value{}, nil
		}
		sv = sv.Elem()
	}
	if !sv.IsValid() {
		return reflect.Value{}, nil
	}
	if sv.Kind() != reflect.Slice && sv.Kind() != reflect.Array {
		return reflect.Value{}, truemapper.ErrScalarToCollection
	}
	return sv, nil
}

func absentElement(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
