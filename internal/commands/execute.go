package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Edit    func(TargetArgs) (Result, error)
	Delete  func(TargetArgs) (Result, error)
	Page    func(PageArgs) (Result, error)
	Next    func() (Result, error)
	Prev    func() (Result, error)
	Refresh func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Target)
	case TypePage:
		if handlers.Page == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Page(*cmd.Page)
	case TypeNext:
		if handlers.Next == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Next()
	case TypePrev:
		if handlers.Prev == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Prev()
	case TypeRefresh:
		if handlers.Refresh == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Refresh()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
