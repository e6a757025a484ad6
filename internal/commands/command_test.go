package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskpager/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"edit 4", TypeEdit},
		{"rm #7", TypeDelete},
		{"delete 7", TypeDelete},
		{"page 3", TypePage},
		{"goto 2", TypePage},
		{"next", TypeNext},
		{"p", TypePrev},
		{"/refresh", TypeRefresh},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("add buy milk priority:high due:2024-06-01 done")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{Title: "buy milk", Priority: model.PriorityHigh, DueDate: "2024-06-01", Done: true}
	if *cmd.Add != want {
		t.Fatalf("unexpected add args: %+v", *cmd.Add)
	}

	cmd, err = Parse("add call bank p:l")
	if err != nil {
		t.Fatalf("parse short priority failed: %v", err)
	}
	if cmd.Add.Priority != model.PriorityLow || cmd.Add.DueDate != "" {
		t.Fatalf("unexpected add args: %+v", *cmd.Add)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add priority:high",
		"add x priority:urgent",
		"add x due:tomorrow",
		"edit",
		"edit abc",
		"delete 0",
		"page",
		"page -1",
		"next 2",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/snooze all"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/delete 12")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Delete: func(a TargetArgs) (Result, error) {
			called = true
			if a.ID != 12 {
				t.Fatalf("unexpected id: %d", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("refresh")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
