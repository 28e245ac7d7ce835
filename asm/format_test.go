package asm

import (
	"reflect"
	"testing"

	"dmasm/operands"
)

func TestFormat(t *testing.T) {
	nodes := []Node{
		DbgFile{Path: "<test>"},
		GetVar{Var: operands.Arg(0)},
		JmpAnd{Label: "LAB_0000"},
		PushVal{Value: operands.Str("hi")},
		Label{Name: "LAB_0000"},
		Ret{},
	}

	want := `  DbgFile "<test>"
  GetVar arg(0)
  JmpAnd LAB_0000
  PushVal "hi"
LAB_0000:
  Ret
`
	if got := Format(nodes); got != want {
		t.Errorf("Format mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	if got := Labels(nodes); !reflect.DeepEqual(got, []string{"LAB_0000"}) {
		t.Errorf("Labels = %v, want [LAB_0000]", got)
	}
}

func TestOperandStrings(t *testing.T) {
	chain := operands.SetCache{
		Base: operands.SetCache{
			Base: operands.Arg(0),
			Then: operands.Field{Name: "loc"},
		},
		Then: operands.Field{Name: "name"},
	}
	want := `set_cache(set_cache(arg(0), field("loc")), field("name"))`
	if got := chain.String(); got != want {
		t.Errorf("chain operand = %s, want %s", got, want)
	}

	if got := (PushVal{Value: operands.Number(1.5)}).String(); got != "PushVal 1.5" {
		t.Errorf("float push = %q", got)
	}
	if got := (PickSwitch{Cases: []operands.Label{"LAB_0001", "LAB_0002"}}).String(); got != "PickSwitch [LAB_0001 LAB_0002]" {
		t.Errorf("pick switch = %q", got)
	}
	if got := (Aug{Op: AugLShift, Var: operands.Local(3)}).String(); got != "AugLShift local(3)" {
		t.Errorf("aug store = %q", got)
	}
}
