package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskpager/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeEdit    Type = "edit"
	TypeDelete  Type = "delete"
	TypePage    Type = "page"
	TypeNext    Type = "next"
	TypePrev    Type = "prev"
	TypeRefresh Type = "refresh"
)

var aliases = map[string]Type{
	"rm":   TypeDelete,
	"del":  TypeDelete,
	"goto": TypePage,
	"n":    TypeNext,
	"p":    TypePrev,
	"r":    TypeRefresh,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs leaves Priority and DueDate empty when not given; the handler picks defaults.
type AddArgs struct {
	Title    string
	Priority model.Priority
	DueDate  string
	Done     bool
}

type TargetArgs struct {
	ID int
}

type PageArgs struct {
	Page int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Page   *PageArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit, TypeDelete:
		return parseTarget(input, typ, args)
	case TypePage:
		return parsePage(input, args)
	case TypeNext, TypePrev, TypeRefresh:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	titleParts := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "priority:"), strings.HasPrefix(lower, "p:"):
			value := arg[strings.Index(arg, ":")+1:]
			priority, err := model.ParsePriority(value)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid priority %q", value)}
			}
			out.Priority = priority
		case strings.HasPrefix(lower, "due:"):
			value := arg[len("due:"):]
			if _, err := model.ParseDueDate(value); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("due date must be %s", model.DateLayout)}
			}
			out.DueDate = value
		case lower == "done" || lower == "completed":
			out.Done = true
		default:
			titleParts = append(titleParts, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleParts, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", typ)}
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id %q", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parsePage(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "page requires a page number"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid page %q", args[0])}
	}
	return Command{Type: TypePage, Raw: raw, Page: &PageArgs{Page: n}}, nil
}
