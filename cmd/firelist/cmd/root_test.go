package cmd

import (
	"reflect"
	"testing"
)

func TestExecuteParsesGlobals(t *testing.T) {
	var (
		gotGlobals *Globals
		gotArgs    []string
	)
	RegisterCommand(&Command{
		Name: "probe",
		Run: func(g *Globals, args []string) error {
			gotGlobals = g
			gotArgs = args
			return nil
		},
	})

	err := Execute([]string{"--source", "firestore", "probe", "--config=alt.yaml", "--verbose", "extra"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := &Globals{ConfigPath: "alt.yaml", Source: "firestore", Verbose: true}
	if !reflect.DeepEqual(gotGlobals, want) {
		t.Errorf("globals = %+v, want %+v", gotGlobals, want)
	}
	if !reflect.DeepEqual(gotArgs, []string{"extra"}) {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"nope"}},
		{"missing flag value", []string{"watch", "--project"}},
		{"bad tail flag", []string{"tail", "--bogus"}},
		{"bad tail duration", []string{"tail", "--for", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Execute(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}, {"-v"}, {"version"}, {"watch", "--help"}} {
		if err := Execute(args); err != nil {
			t.Errorf("Execute(%v) = %v", args, err)
		}
	}
}
