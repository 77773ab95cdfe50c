package debug

import (
	"bytes"
	"log"
	"testing"
)

func TestFormat(t *testing.T) {
	output := new(bytes.Buffer)
	flags, writer := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(output)
	defer func() {
		log.SetOutput(writer)
		log.SetFlags(flags)
	}()

	on := Enabled()
	defer Toggle(on)

	Toggle(false)
	Format("hidden %d", 1)
	if output.Len() != 0 {
		t.Fatalf("debug output written while disabled: %q", output.String())
	}

	Toggle(true)
	Format("shown %d", 2)
	if got := output.String(); got != "shown 2\n" {
		t.Fatalf("wrong debug output: %q", got)
	}
}

func TestDo(t *testing.T) {
	on := Enabled()
	defer Toggle(on)

	calls := 0
	Toggle(false)
	Do(func() { calls++ })
	Toggle(true)
	Do(func() { calls++ })

	if calls != 1 {
		t.Fatalf("wrong number of calls: want=1 got=%d", calls)
	}
}
