package tree_test

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/canopy/pkg/testutil"
	"github.com/vanderheijden86/canopy/pkg/tree"
)

func lineByName(t *testing.T, tr *tree.Tree, name string) tree.Line {
	t.Helper()
	for line := range tr.VisibleFragments() {
		if tr.At(line.ID).Name == name {
			return line
		}
	}
	t.Fatalf("entry %q not visible", name)
	return tree.Line{}
}

func TestFragmentsIndentIconAndName(t *testing.T) {
	tr := scenario(t)
	tr.ExpandPath(scenarioRoot + "/src")
	tr.ExpandPath(scenarioRoot + "/src/my_lib")

	tests := []struct {
		name string
		want []tree.Fragment
	}{
		{"project", []tree.Fragment{ // expanded root: no indent, focus style
			{Style: tree.StyleFocus, Text: "▾ "},
			{Style: tree.StyleFocus, Text: "project"},
		}},
		{"pyproject.toml", []tree.Fragment{
			{Style: tree.StyleDefault, Text: "  "},
			{Style: tree.StyleDefault, Text: "• "},
			{Style: tree.StyleDefault, Text: "pyproject.toml"},
		}},
		{"tests", []tree.Fragment{ // collapsed container
			{Style: tree.StyleDefault, Text: "  "},
			{Style: tree.StyleDefault, Text: "▸ "},
			{Style: tree.StyleDefault, Text: "tests"},
		}},
		{"my_lib", []tree.Fragment{ // expanded container, two levels deep
			{Style: tree.StyleDefault, Text: "    "},
			{Style: tree.StyleDefault, Text: "▾ "},
			{Style: tree.StyleDefault, Text: "my_lib"},
		}},
		{"base.py", []tree.Fragment{
			{Style: tree.StyleDefault, Text: "      "},
			{Style: tree.StyleDefault, Text: "• "},
			{Style: tree.StyleDefault, Text: "base.py"},
		}},
	}
	for _, tt := range tests {
		line := lineByName(t, tr, tt.name)
		if !reflect.DeepEqual(line.Fragments, tt.want) {
			t.Errorf("%s fragments = %v, want %v", tt.name, line.Fragments, tt.want)
		}
	}
}

func TestFragmentsSplitNameAroundMatch(t *testing.T) {
	tr := scenario(t)
	tr.Find("main")

	line := lineByName(t, tr, "test_main.py")
	want := []tree.Fragment{
		{Style: tree.StyleDefault, Text: "    "},
		{Style: tree.StyleDefault, Text: "• "},
		{Style: tree.StyleDefault, Text: "test_"},
		{Style: tree.StyleMatch, Text: "main"},
		{Style: tree.StyleDefault, Text: ".py"},
	}
	if !reflect.DeepEqual(line.Fragments, want) {
		t.Errorf("fragments = %v, want %v", line.Fragments, want)
	}
}

func TestFragmentsOmitEmptyRunsAroundMatch(t *testing.T) {
	tr := scenario(t)
	tr.Find("pyproject.toml")

	line := lineByName(t, tr, "pyproject.toml")
	want := []tree.Fragment{
		{Style: tree.StyleDefault, Text: "  "},
		{Style: tree.StyleDefault, Text: "• "},
		{Style: tree.StyleMatch, Text: "pyproject.toml"},
	}
	if !reflect.DeepEqual(line.Fragments, want) {
		t.Errorf("fragments = %v, want %v", line.Fragments, want)
	}
}

func TestFocusAndMatchStylesCompose(t *testing.T) {
	tr := scenario(t)
	tr.Find("base")
	mustFocus(t, tr, "base.py")

	line := lineByName(t, tr, "base.py")
	if !line.Focused {
		t.Fatalf("line not marked focused")
	}
	want := []tree.Fragment{
		{Style: tree.StyleFocus, Text: "      "},
		{Style: tree.StyleFocus, Text: "• "},
		{Style: tree.StyleFocus | tree.StyleMatch, Text: "base"},
		{Style: tree.StyleFocus, Text: ".py"},
	}
	if !reflect.DeepEqual(line.Fragments, want) {
		t.Errorf("fragments = %v, want %v", line.Fragments, want)
	}
}

func countLines(tr *tree.Tree) int {
	n := 0
	for range tr.VisibleFragments() {
		n++
	}
	return n
}

func TestVisibleLineCountFollowsExpansion(t *testing.T) {
	tr := scenario(t)
	if got := countLines(tr); got != 4 {
		t.Fatalf("initial lines = %d, want 4", got)
	}
	tr.ExpandPath(scenarioRoot + "/src")
	if got := countLines(tr); got != 6 {
		t.Errorf("after expanding src: %d lines, want 6", got)
	}
	tr.ExpandPath(scenarioRoot + "/src/my_lib")
	if got := countLines(tr); got != 7 {
		t.Errorf("after expanding my_lib: %d lines, want 7", got)
	}
	tr.ExpandPath(scenarioRoot + "/tests")
	if got := countLines(tr); got != 8 {
		t.Errorf("after expanding tests: %d lines, want 8", got)
	}

	// Collapsing src hides its whole expanded subtree in one step.
	if !tr.FocusPath(scenarioRoot + "/src") {
		t.Fatalf("focus src")
	}
	tr.Exit()
	if got := countLines(tr); got != 5 {
		t.Errorf("after collapsing src: %d lines, want 5", got)
	}
}

func TestVisibleFragmentsIsRestartable(t *testing.T) {
	tr := scenario(t)
	tr.ExpandPath(scenarioRoot + "/src")

	first := visibleNames(tr)

	// Abandon a walk partway, then run a full one again.
	seq := tr.VisibleFragments()
	seen := 0
	for range seq {
		seen++
		if seen == 2 {
			break
		}
	}
	var restarted []string
	for line := range seq {
		restarted = append(restarted, tr.At(line.ID).Name)
	}
	if !reflect.DeepEqual(restarted, first) {
		t.Errorf("restarted walk = %v, want %v", restarted, first)
	}
	if !reflect.DeepEqual(visibleNames(tr), first) {
		t.Errorf("fresh sequence diverged from first walk")
	}
}

func TestIgnoredEntriesNeverRender(t *testing.T) {
	tr, err := tree.New(tree.Config{
		RootPath:   scenarioRoot,
		Enumerator: testutil.ScenarioFS(scenarioRoot),
		Oracle:     testutil.StaticOracle{scenarioRoot + "/src": true},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Find("py") // materializes everything that can load

	for line := range tr.VisibleFragments() {
		if name := tr.At(line.ID).Name; name == "src" || name == "main.py" || name == "base.py" {
			t.Errorf("ignored subtree leaked into view: %s", name)
		}
	}
	// The surviving matches still expanded their ancestors.
	if got := countLines(tr); got != 4 {
		t.Errorf("lines = %d, want 4 (root, pyproject.toml, tests, test_main.py)", got)
	}
}
