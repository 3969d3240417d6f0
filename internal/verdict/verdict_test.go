package verdict

import (
	"strings"
	"testing"
)

func TestCombine_EmptyIsVacuousPass(t *testing.T) {
	v := Combine()

	if v.Class != ClassPass {
		t.Errorf("Expected PASS for empty combine, got %s", v.Class)
	}
}

func TestCombine_TakesMostSevere(t *testing.T) {
	v := Combine(Pass("ok"), Warn("meh"), Fail("bad"))

	if v.Class != ClassFail {
		t.Errorf("Expected FAIL, got %s", v.Class)
	}
	if !strings.Contains(v.Message, "bad") {
		t.Errorf("Expected message of worst verdict to survive, got %q", v.Message)
	}
}

func TestCombine_OrderIndependent(t *testing.T) {
	a := Combine(Fail("x"), Warn("y"), Pass("z"))
	b := Combine(Pass("z"), Warn("y"), Fail("x"))

	if a.Class != b.Class {
		t.Errorf("Combine should be commutative over classification: %s vs %s", a.Class, b.Class)
	}
}

func TestCombine_JoinsWorstMessages(t *testing.T) {
	v := Combine(Fail("first"), Fail("second"), Pass("ignored"))

	if !strings.Contains(v.Message, "first") || !strings.Contains(v.Message, "second") {
		t.Errorf("Expected both failure messages, got %q", v.Message)
	}
	if strings.Contains(v.Message, "ignored") {
		t.Errorf("Expected passing message to be dropped, got %q", v.Message)
	}
}

func TestCombine_AllPassKeepsPass(t *testing.T) {
	v := Combine(Pass("a"), Pass("b"))

	if v.Class != ClassPass {
		t.Errorf("Expected PASS, got %s", v.Class)
	}
}

func TestClassString(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{ClassPass, "PASS"},
		{ClassWarn, "WARN"},
		{ClassFail, "FAIL"},
	}

	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", int(tt.class), got, tt.want)
		}
	}
}

func TestClassOrdering(t *testing.T) {
	if !(ClassFail < ClassWarn && ClassWarn < ClassPass) {
		t.Error("Expected FAIL < WARN < PASS severity ordering")
	}
}
