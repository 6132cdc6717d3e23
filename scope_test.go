package vcd_test

import (
	"strings"
	"testing"

	"github.com/hwtrace/vcd"
	"github.com/hwtrace/vcd/vcdtest"
)

// declarations cuts the scope/variable declaration block out of a trace.
func declarations(t *testing.T, out string) string {
	t.Helper()
	end := strings.Index(out, "$enddefinitions $end\n")
	if end < 0 {
		t.Fatalf("no $enddefinitions in output:\n%s", out)
	}
	start := strings.Index(out, "$scope ")
	if start < 0 || start > end {
		t.Fatalf("no $scope block in output:\n%s", out)
	}
	return out[start : end+len("$enddefinitions $end\n")]
}

func Test_scope_nesting(t *testing.T) {
	td := []struct {
		name   string
		scopes [][2]string // scope name, variable name
		want   string
	}{
		{
			"siblings sorted",
			[][2]string{{"b", "y"}, {"a", "x"}},
			"$scope module a $end\n" +
				"$var wire 1 1 x $end\n" +
				"$upscope $end\n" +
				"$scope module b $end\n" +
				"$var wire 1 0 y $end\n" +
				"$upscope $end\n" +
				"$enddefinitions $end\n",
		},
		{
			"nested",
			[][2]string{{"top", "a"}, {"top.sub", "b"}},
			"$scope module top $end\n" +
				"$var wire 1 0 a $end\n" +
				"$scope module sub $end\n" +
				"$var wire 1 1 b $end\n" +
				"$upscope $end\n" +
				"$upscope $end\n" +
				"$enddefinitions $end\n",
		},
		{
			"prefix at non-boundary",
			[][2]string{{"a.su", "u"}, {"a.sub", "v"}},
			"$scope module a $end\n" +
				"$scope module su $end\n" +
				"$var wire 1 0 u $end\n" +
				"$upscope $end\n" +
				"$scope module sub $end\n" +
				"$var wire 1 1 v $end\n" +
				"$upscope $end\n" +
				"$upscope $end\n" +
				"$enddefinitions $end\n",
		},
		{
			"deep jump",
			[][2]string{{"a.b.c", "x"}, {"d", "y"}},
			"$scope module a $end\n" +
				"$scope module b $end\n" +
				"$scope module c $end\n" +
				"$var wire 1 0 x $end\n" +
				"$upscope $end\n" +
				"$upscope $end\n" +
				"$upscope $end\n" +
				"$scope module d $end\n" +
				"$var wire 1 1 y $end\n" +
				"$upscope $end\n" +
				"$enddefinitions $end\n",
		},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			w, buf := newWriter(t, 0)
			for _, s := range d.scopes {
				if _, err := w.RegisterVar(s[0], s[1], vcd.VarWire, 1, "0"); err != nil {
					t.Fatal(err)
				}
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			vcdtest.CompareLines(t, declarations(t, buf.String()), d.want)
		})
	}
}

func Test_scope_types(t *testing.T) {
	w, buf := newWriter(t, 0)
	if _, err := w.RegisterScope("top", vcd.ScopeTask); err != nil {
		t.Fatal(err)
	}
	if _, err := w.RegisterVar("top.inner", "v", vcd.VarWire, 1, "0"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := "$scope task top $end\n" +
		"$scope module inner $end\n" +
		"$var wire 1 0 v $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$enddefinitions $end\n"
	vcdtest.CompareLines(t, declarations(t, buf.String()), want)
}

func Test_scope_type_inherited(t *testing.T) {
	// "sys" is never registered on its own: its open marker borrows the
	// type of the scope being declared.
	w, buf := newWriter(t, 0)
	if _, err := w.RegisterScope("sys.unit", vcd.ScopeFunction); err != nil {
		t.Fatal(err)
	}
	if _, err := w.RegisterVar("sys.unit", "f", vcd.VarWire, 1, "0"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := "$scope function sys $end\n" +
		"$scope function unit $end\n" +
		"$var wire 1 0 f $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$enddefinitions $end\n"
	vcdtest.CompareLines(t, declarations(t, buf.String()), want)
}

func Test_set_scope_type(t *testing.T) {
	w, buf := newWriter(t, 0)
	if _, err := w.RegisterVar("top", "v", vcd.VarWire, 1, "0"); err != nil {
		t.Fatal(err)
	}
	if err := w.SetScopeType("top", vcd.ScopeFork); err != nil {
		t.Fatal(err)
	}
	if err := w.SetScopeType("nope", vcd.ScopeFork); !vcd.IsPhase(err) {
		t.Errorf("unknown scope: expected PhaseError, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "$scope fork top $end\n") {
		t.Errorf("scope type change not applied:\n%s", buf.String())
	}
}

func Test_scope_lookup(t *testing.T) {
	w, _ := newWriter(t, 0)
	v, err := w.RegisterVar("top.sub", "clk", vcd.VarWire, 1, "0")
	if err != nil {
		t.Fatal(err)
	}
	s, err := w.Scope(v.ScopeName())
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "top.sub" || len(s.Vars()) != 1 || s.Vars()[0] != v {
		t.Errorf("unexpected scope %q with %d vars", s.Name(), len(s.Vars()))
	}
	if _, err := w.Scope("nope"); !vcd.IsPhase(err) {
		t.Errorf("expected PhaseError, got %v", err)
	}
}

func Test_register_scope_idempotent(t *testing.T) {
	w, _ := newWriter(t, 0)
	s1, err := w.RegisterScope("top", vcd.ScopeModule)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := w.RegisterScope("top", vcd.ScopeTask)
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Error("expected the same scope back")
	}
	if s2.Type() != vcd.ScopeModule {
		t.Errorf("re-registration must not change the type, got %v", s2.Type())
	}
	if _, err := w.RegisterScope("", vcd.ScopeModule); !vcd.IsValidation(err) {
		t.Errorf("empty name: expected ValidationError, got %v", err)
	}
}

func Test_custom_separator(t *testing.T) {
	w, buf := newWriter(t, 0, vcd.WithScopeSep("/"))
	if _, err := w.RegisterVar("top/sub", "v", vcd.VarWire, 1, "0"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := "$scope module top $end\n" +
		"$scope module sub $end\n" +
		"$var wire 1 0 v $end\n" +
		"$upscope $end\n" +
		"$upscope $end\n" +
		"$enddefinitions $end\n"
	vcdtest.CompareLines(t, declarations(t, buf.String()), want)
}
