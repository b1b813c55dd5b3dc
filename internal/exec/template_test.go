package exec

import "testing"

func sliceEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTemplateEmptyGetsImplicitStub(t *testing.T) {
	tmpl := NewTemplate(nil)
	got := tmpl.Apply("foo")
	if !sliceEq(got, []string{"foo"}) {
		t.Errorf("got %v, want [foo]", got)
	}
}

func TestTemplateCompleteIsUnchanged(t *testing.T) {
	tmpl := NewTemplate([]string{"touch", "{}.mark"})
	got := tmpl.Apply("foo")
	if !sliceEq(got, []string{"touch", "foo.mark"}) {
		t.Errorf("got %v", got)
	}
}

func TestTemplateApplySubstitutesEveryStub(t *testing.T) {
	tmpl := NewTemplate([]string{"cp", "{}", "{}.bak"})
	got := tmpl.Apply("foo")
	want := []string{"cp", "foo", "foo.bak"}
	if !sliceEq(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTemplateMultipleStubsInOneFragment(t *testing.T) {
	tmpl := NewTemplate([]string{"echo", "{}-{}"})
	got := tmpl.Apply("x")
	want := []string{"echo", "x-x"}
	if !sliceEq(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
