package treediff

import (
	"strings"
	"testing"

	"github.com/grovekit/grove/tree"
)

func mustBuild(t *testing.T, v any) *tree.Node {
	t.Helper()
	n, err := tree.Build(v)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func wantChange(t *testing.T, c Change, path string, kind ChangeKind) {
	t.Helper()
	if c.Path != path || c.Kind != kind {
		t.Fatalf("change = %s %s, want %s %s", c.Path, c.Kind, path, kind)
	}
}

func TestDiffEqual(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": []int{1, 2}, "b": map[string]any{"c": 5}})
	b := mustBuild(t, map[string]any{"a": []int{1, 2}, "b": map[string]any{"c": 5}})
	if rep := Diff(a, b); !rep.Empty() {
		t.Fatalf("equal trees diff:\n%s", rep)
	}
}

func TestDiffMapReorderOnly(t *testing.T) {
	a := mustBuild(t, []tree.KeyVal{
		{Key: "z", Val: []int{1}},
		{Key: "a", Val: []int{2}},
	})
	b := mustBuild(t, []tree.KeyVal{
		{Key: "a", Val: []int{2}},
		{Key: "z", Val: []int{1}},
	})
	if rep := Diff(a, b); !rep.Empty() {
		t.Fatalf("reordered mapping diffs:\n%s", rep)
	}
}

func TestDiffValue(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": []int{1, 2}})
	b := mustBuild(t, map[string]any{"a": []int{1, 3}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.a", ValueKind)
	s := rep.Changes[0].String()
	if !strings.Contains(s, "{-2-}") || !strings.Contains(s, "{+3+}") {
		t.Fatalf("delta = %q", s)
	}
}

func TestDiffScalarValue(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": 1})
	b := mustBuild(t, map[string]any{"a": 2})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	if got := rep.Changes[0].String(); got != "$.a: {-1-}{+2+}" {
		t.Fatalf("rendered change = %q", got)
	}
}

func TestDiffMapKeys(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": 1, "b": 2})
	b := mustBuild(t, map[string]any{"a": 1, "c": 3})
	rep := Diff(a, b)
	if len(rep.Changes) != 2 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.b", DeleteKind)
	wantChange(t, rep.Changes[1], "$.c", InsertKind)
}

func TestDiffKindChange(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": []int{1, 2}})
	b := mustBuild(t, map[string]any{"a": map[string]any{"b": 1}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.a", ReplaceKind)
}

func TestDiffDTypeChange(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": 1})
	b := mustBuild(t, map[string]any{"a": 1.0})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.a", ReplaceKind)
}

func TestDiffShapeChange(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": []int{1, 2}})
	b := mustBuild(t, map[string]any{"a": []int{1, 2, 3}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.a", ReplaceKind)
}

func TestDiffListInsert(t *testing.T) {
	a := mustBuild(t, []any{[]int{1, 2}, []int{3, 4, 5}})
	b := mustBuild(t, []any{[]int{1, 2}, []int{9}, []int{3, 4, 5}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$[1]", InsertKind)
}

func TestDiffListReplacePair(t *testing.T) {
	a := mustBuild(t, []any{[]int{1, 2}, []int{3, 4, 5}})
	b := mustBuild(t, []any{[]int{7, 8, 9, 0}})
	rep := Diff(a, b)
	if len(rep.Changes) != 2 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$[0]", ReplaceKind)
	wantChange(t, rep.Changes[1], "$[1]", DeleteKind)
}

func TestDiffNestedPath(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": map[string]any{"b": []any{map[string]any{"c": 1}}}})
	b := mustBuild(t, map[string]any{"a": map[string]any{"b": []any{map[string]any{"c": 2}}}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$.a.b[0].c", ValueKind)
}

func TestDiffQuotedKey(t *testing.T) {
	a := mustBuild(t, map[string]any{"dotted.key": 1})
	b := mustBuild(t, map[string]any{"dotted.key": 2})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	if rep.Changes[0].Path != "$.'dotted.key'" {
		t.Fatalf("path = %q", rep.Changes[0].Path)
	}
}

func TestDiffRootKindChange(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": 1})
	b := mustBuild(t, []any{[]int{1}})
	rep := Diff(a, b)
	if len(rep.Changes) != 1 {
		t.Fatalf("changes:\n%s", rep)
	}
	wantChange(t, rep.Changes[0], "$", ReplaceKind)
}

func TestReportString(t *testing.T) {
	a := mustBuild(t, map[string]any{"a": 1, "b": 2})
	b := mustBuild(t, map[string]any{"a": 3, "c": map[string]any{"d": 4}})
	s := Diff(a, b).String()
	for _, want := range []string{"$.b: delete 2", "$.c: insert {d: 4}", "$.a: "} {
		if !strings.Contains(s, want) {
			t.Fatalf("report %q missing %q", s, want)
		}
	}
}
