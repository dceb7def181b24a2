package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Abdullah1738/deploytime/genesis"
)

func TestRun_HelpAndUnknown(t *testing.T) {
	if err := run(nil); err != nil {
		t.Fatalf("help: %v", err)
	}
	if err := run([]string{"--help"}); err != nil {
		t.Fatalf("--help: %v", err)
	}
	if err := run([]string{"bogus"}); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestCmdWhen_ArgValidation(t *testing.T) {
	if err := cmdWhen(nil); err == nil {
		t.Fatalf("expected missing program id error")
	}
	if err := cmdWhen([]string{"a", "b"}); err == nil {
		t.Fatalf("expected extra args error")
	}
	if err := cmdWhen([]string{"--interval", "nope", "Prog"}); err == nil {
		t.Fatalf("expected invalid interval error")
	}
	if err := cmdWhen([]string{"--base-delay", "0s", "Prog"}); err == nil {
		t.Fatalf("expected invalid base-delay error")
	}
	if err := cmdWhen([]string{"--max-attempts", "0", "Prog"}); err == nil {
		t.Fatalf("expected invalid max-attempts error")
	}
}

func TestPrintResult(t *testing.T) {
	res := genesis.Result{
		ProgramID:         "Prog",
		BlockTime:         1620000000,
		EarliestSignature: "sig",
	}

	var buf bytes.Buffer
	if err := printResult(&buf, res, false, false); err != nil {
		t.Fatalf("printResult: %v", err)
	}
	if got := buf.String(); got != "Prog deployed 2021-05-03T00:00:00.000Z (sig)\n" {
		t.Fatalf("machine output: %q", got)
	}

	buf.Reset()
	if err := printResult(&buf, res, true, false); err != nil {
		t.Fatalf("printResult human: %v", err)
	}
	if !strings.Contains(buf.String(), "Mon, 03 May 2021 00:00:00 UTC") {
		t.Fatalf("human output: %q", buf.String())
	}

	buf.Reset()
	if err := printResult(&buf, res, false, true); err != nil {
		t.Fatalf("printResult json: %v", err)
	}
	for _, want := range []string{`"program_id": "Prog"`, `"block_time": 1620000000`, `"timestamp": "2021-05-03T00:00:00.000Z"`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("json output missing %q: %s", want, buf.String())
		}
	}
}

func TestUsage_MentionsStrictTradeoff(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)
	if !strings.Contains(buf.String(), "--strict") {
		t.Fatalf("usage should document --strict: %s", buf.String())
	}
}
