package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// A Writer streams a VCD trace to a borrowed byte sink.
//
// A Writer is owned by a single goroutine: no internal locking exists and
// all operations are synchronous formatting followed by a blocking write.
// Change timestamps must arrive in non-decreasing order. The sink is assumed
// open; the writer never closes, reopens or retries it, and the first sink
// failure is returned to the caller and sticks.
type Writer struct {
	out          *printer
	header       *Header
	scopeSep     string
	defScopeType ScopeType
	allowDup     bool

	timestamp   uint64 // current simulated time, never decreases
	nextID      uint32 // wire identifier counter, never reused
	registering bool
	dumping     bool
	closed      bool

	scopes  map[string]*Scope
	vars    map[varKey]*Variable
	tracked []*Variable          // identifier order, for deterministic bulk dumps
	prev    map[*Variable]string // last emitted encoded value
}

// varKey is the composite lookup key for registered variables.
type varKey struct {
	scope, name string
}

// An Option configures a Writer.
type Option func(*Writer) error

// WithScopeSep sets the separator splitting dotted scope names into
// hierarchy segments. The default is ".".
func WithScopeSep(sep string) Option {
	return func(w *Writer) error {
		if sep == "" {
			return validationErrorf("empty scope separator")
		}
		w.scopeSep = sep
		return nil
	}
}

// WithDefaultScopeType sets the type given to scopes created implicitly by
// RegisterVar. The default is ScopeModule.
func WithDefaultScopeType(t ScopeType) Option {
	return func(w *Writer) error {
		if t < ScopeBegin || t > ScopeTask {
			return validationErrorf("invalid default scope type")
		}
		w.defScopeType = t
		return nil
	}
}

// WithDuplicateNames disables the duplicate (scope, name) check in
// RegisterVar. When two variables share a name, both are declared and
// tracked independently, and lookups by name resolve to the first one
// registered.
func WithDuplicateNames() Option {
	return func(w *Writer) error {
		w.allowDup = true
		return nil
	}
}

// New returns a Writer rendering to sink, starting at the given initial
// timestamp. The header must be non-nil and is rendered when registration is
// finalized. The sink is borrowed: Close flushes buffered output but leaves
// the sink open.
func New(sink io.Writer, h *Header, start uint64, opts ...Option) (*Writer, error) {
	if sink == nil {
		return nil, validationErrorf("nil sink")
	}
	if h == nil {
		return nil, validationErrorf("nil header")
	}
	w := &Writer{
		out:          &printer{w: bufio.NewWriter(sink)},
		header:       h,
		scopeSep:     ".",
		defScopeType: ScopeModule,
		timestamp:    start,
		registering:  true,
		dumping:      true,
		scopes:       make(map[string]*Scope),
		vars:         make(map[varKey]*Variable),
		prev:         make(map[*Variable]string),
	}
	for _, o := range opts {
		if err := o(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Timestamp returns the writer's current simulated time.
func (w *Writer) Timestamp() uint64 { return w.timestamp }

// RegisterVar registers a variable under the scope with the given full
// dotted name, creating the scope if needed, and seeds its initial value at
// the current timestamp. width may be 0 to use the type's default width:
// integer and realtime default to 64 bits, string to 1; real is always 64
// and event always 1; all other types require an explicit width.
//
// For real variables an undefined ("x") init value is replaced by "0.0",
// since reals cannot represent undefined. For explicit-width vector types an
// undefined init value is expanded to a full-width run of "x". Event
// variables receive no initial value at all.
//
// RegisterVar fails with a PhaseError once registration is finished, with a
// ValidationError for empty names or a missing width, and with a
// DuplicateError if the (scope, name) pair already exists (unless the writer
// was built with WithDuplicateNames).
func (w *Writer) RegisterVar(scope, name string, typ VarType, width int, init string) (*Variable, error) {
	if w.closed {
		return nil, phaseErrorf("cannot register variable %q after Close", name)
	}
	if !w.registering {
		return nil, phaseErrorf("cannot register variable %q, registration finished", name)
	}
	if scope == "" || name == "" {
		return nil, validationErrorf("empty scope %q or variable name %q", scope, name)
	}
	if typ < VarWire || typ > VarWOr {
		return nil, validationErrorf("invalid type for variable %q", name)
	}
	if width < 0 {
		return nil, validationErrorf("negative width for variable %q", name)
	}
	key := varKey{scope, name}
	if _, exists := w.vars[key]; exists && !w.allowDup {
		return nil, duplicateErrorf("duplicate variable %q in scope %q", name, scope)
	}

	var enc encoder
	switch typ {
	case VarInteger, VarRealtime:
		if width == 0 {
			width = 64
		}
		if width == 1 {
			enc = scalarEncoder{}
		} else {
			enc = vectorEncoder{width: width}
		}
	case VarReal:
		width = 64
		enc = realEncoder{}
		if init == string(vUndef) {
			init = "0.0"
		}
	case VarString:
		if width == 0 {
			width = 1
		}
		enc = stringEncoder{}
	case VarEvent:
		width = 1
		enc = scalarEncoder{}
	default:
		if width == 0 {
			return nil, validationErrorf("must supply width for %s variable %q", typ, name)
		}
		enc = vectorEncoder{width: width}
		if init == string(vUndef) {
			init = strings.Repeat(string(vUndef), width)
		}
	}

	v := &Variable{ident: w.nextID, typ: typ, name: name, width: width, scope: scope, enc: enc}

	// Events never receive an implicit baseline.
	var baseline string
	if typ != VarEvent {
		var err error
		baseline, err = enc.encode(init)
		if err != nil {
			return nil, errors.Wrap(err, "init value for variable "+name)
		}
	}

	// All validation done, mutate.
	s := w.scope(scope, w.defScopeType)
	if typ != VarEvent {
		w.track(v, baseline)
	}
	if _, exists := w.vars[key]; !exists {
		w.vars[key] = v
	}
	s.vars = append(s.vars, v)
	w.nextID++
	return v, nil
}

// Var looks up a registered variable by scope and name. It fails with a
// PhaseError if no such variable exists.
func (w *Writer) Var(scope, name string) (*Variable, error) {
	v, ok := w.vars[varKey{scope, name}]
	if !ok {
		return nil, phaseErrorf("variable %q in scope %q does not exist", name, scope)
	}
	return v, nil
}

// Change records a new value for the variable with the given scope and name
// at the given timestamp. It reports whether the value actually changed:
// re-applying the current value is a silent no-op. The first Change that
// advances the timestamp finalizes registration and flushes the declaration
// block.
func (w *Writer) Change(scope, name string, timestamp uint64, value string) (bool, error) {
	v, err := w.Var(scope, name)
	if err != nil {
		return false, err
	}
	return w.change(v, timestamp, value, false)
}

// ChangeVar is like Change but takes the variable returned by RegisterVar
// directly, skipping the name lookup.
func (w *Writer) ChangeVar(v *Variable, timestamp uint64, value string) (bool, error) {
	if v == nil {
		return false, validationErrorf("nil variable")
	}
	return w.change(v, timestamp, value, false)
}

// change applies a value change. allowFirst permits seeding a variable that
// has no tracked value yet; that only happens during registration.
func (w *Writer) change(v *Variable, timestamp uint64, value string, allowFirst bool) (bool, error) {
	if w.closed {
		return false, phaseErrorf("cannot change value after Close")
	}
	if timestamp < w.timestamp {
		return false, phaseErrorf("out of order change for variable %q: timestamp %d < %d",
			v.name, timestamp, w.timestamp)
	}
	if timestamp > w.timestamp {
		if w.registering {
			if err := w.finalizeRegistration(); err != nil {
				return false, err
			}
		}
		if w.dumping {
			w.out.printf("#%d\n", timestamp)
		}
		w.timestamp = timestamp
	}

	encoded, err := v.enc.encode(value)
	if err != nil {
		return false, err
	}

	last, ok := w.prev[v]
	switch {
	case ok && last == encoded:
		return false, w.out.err
	case ok:
		w.prev[v] = encoded
	case allowFirst:
		w.track(v, encoded)
	default:
		return false, validationErrorf("variable %q has no tracked value", v.name)
	}
	if w.dumping && !w.registering {
		w.out.printf("%s%x\n", encoded, v.ident)
	}
	return true, w.out.err
}

// track caches a variable's first encoded value and adds it to the bulk dump
// order.
func (w *Writer) track(v *Variable, encoded string) {
	w.prev[v] = encoded
	w.tracked = append(w.tracked, v)
}

// DumpOff suspends value recording at the given timestamp. A $dumpoff block
// blanks every tracked non-real variable to the undefined state; until
// DumpOn, changes are tracked but not written. DumpOff is a no-op if
// recording is already off.
func (w *Writer) DumpOff(timestamp uint64) error {
	if w.closed {
		return phaseErrorf("cannot suspend dumping after Close")
	}
	if timestamp < w.timestamp {
		return phaseErrorf("out of order dump off: timestamp %d < %d", timestamp, w.timestamp)
	}
	if !w.dumping {
		return nil
	}
	if w.registering {
		// Declarations and the baseline dump go out first; finalization
		// notices the cleared flag and appends the blanking block itself.
		w.dumping = false
		w.timestamp = timestamp
		return w.finalizeRegistration()
	}
	w.out.printf("#%d\n", timestamp)
	w.dumpOffBlock()
	w.timestamp = timestamp
	w.dumping = false
	return w.out.err
}

// DumpOn resumes value recording at the given timestamp, emitting a $dumpon
// block with the current value of every tracked variable. DumpOn is a no-op
// if recording is already on.
func (w *Writer) DumpOn(timestamp uint64) error {
	if w.closed {
		return phaseErrorf("cannot resume dumping after Close")
	}
	if timestamp < w.timestamp {
		return phaseErrorf("out of order dump on: timestamp %d < %d", timestamp, w.timestamp)
	}
	if w.dumping {
		return nil
	}
	w.out.printf("#%d\n", timestamp)
	w.dumpValues("$dumpon")
	w.timestamp = timestamp
	w.dumping = true
	return w.out.err
}

// Close finalizes registration if it is still pending, flushes buffered
// output and makes the writer unusable. The underlying sink stays open.
// Closing an already closed writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if w.registering {
		if err := w.finalizeRegistration(); err != nil {
			w.closed = true
			return err
		}
	}
	w.closed = true
	return w.out.flush()
}

// finalizeRegistration transitions the writer from registering to streaming:
// it renders the header, the nested declaration block and the baseline
// $dumpvars dump. When recording is off it follows up with a $dumpoff
// blanking block, so the file records the gap.
func (w *Writer) finalizeRegistration() error {
	for _, kw := range w.header.keywords() {
		if kw.value == "" {
			continue
		}
		w.out.printf("%s %s $end\n", kw.name, foldNewLines(kw.value))
	}
	w.writeDeclarations()
	if len(w.tracked) > 0 {
		w.out.printf("#%d\n", w.timestamp)
		w.dumpValues("$dumpvars")
		if !w.dumping {
			w.dumpOffBlock()
		}
	}
	w.registering = false
	return w.out.err
}

// dumpValues emits a bulk dump block with the current value of every
// tracked variable, in identifier order.
func (w *Writer) dumpValues(keyword string) {
	w.out.printf("%s\n", keyword)
	for _, v := range w.tracked {
		w.out.printf("%s%x\n", w.prev[v], v.ident)
	}
	w.out.printf("$end\n")
}

// dumpOffBlock emits a $dumpoff block blanking every tracked variable to
// the undefined state. Reals are skipped, they cannot represent undefined.
func (w *Writer) dumpOffBlock() {
	w.out.printf("$dumpoff\n")
	for _, v := range w.tracked {
		switch w.prev[v][0] {
		case 'r':
		case 'b':
			w.out.printf("bx %x\n", v.ident)
		default:
			w.out.printf("x%x\n", v.ident)
		}
	}
	w.out.printf("$end\n")
}

// printer is a buffered writer with a sticky error: after the first failed
// write everything becomes a no-op and the error is reported to the caller.
type printer struct {
	w   *bufio.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = errors.Wrap(err, "sink write")
	}
}

func (p *printer) flush() error {
	if err := p.w.Flush(); err != nil && p.err == nil {
		p.err = errors.Wrap(err, "sink write")
	}
	return p.err
}
