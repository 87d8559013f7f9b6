package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-tilequest/internal/storage"
)

// ParsedArg is a validated input value.
type ParsedArg struct {
	Spec  *InputSpec
	Raw   string
	Value any
}

type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory turns a command's config into a CommandFunc.
type HandlerFactory interface {
	ValidateConfig(config map[string]any) error
	Create(config map[string]any) (CommandFunc, error)
}

type compiledCommand struct {
	name    string
	cmd     *Command
	cmdFunc CommandFunc
}

// Handler resolves typed lines to commands and runs them.
type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
}

func NewHandler(c storage.Storer[*Command]) *Handler {
	h := &Handler{
		store:     c,
		factories: map[string]HandlerFactory{},
		compiled:  map[string]*compiledCommand{},
	}

	h.factories["move"] = &MoveHandlerFactory{}
	h.factories["interact"] = &InteractHandlerFactory{}
	h.factories["scroll"] = &ScrollHandlerFactory{}
	h.factories["tool"] = &ToolHandlerFactory{}
	h.factories["journal"] = &JournalHandlerFactory{}
	h.factories["goals"] = &GoalsHandlerFactory{}
	h.factories["save"] = &SaveHandlerFactory{}
	h.factories["quit"] = &QuitHandlerFactory{}
	h.factories["width"] = &WidthHandlerFactory{}
	h.factories["warp"] = &WarpHandlerFactory{}
	h.factories["help"] = &HelpHandlerFactory{store: c}
	return h
}

// RegisterFactory adds a handler kind. The name must match the "handler"
// field in command JSON.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles every command in the store, aliases included.
func (h *Handler) CompileAll() error {
	all := h.store.GetAll()

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := h.compile(id, all[id]); err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create(cmd.Config)
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	c := &compiledCommand{name: id, cmd: cmd, cmdFunc: cmdFunc}
	for _, word := range append([]string{strings.ToLower(id)}, cmd.Aliases...) {
		if other, exists := h.compiled[word]; exists {
			return fmt.Errorf("%q is already used by %q", word, other.name)
		}
		h.compiled[word] = c
	}
	return nil
}

// Exec runs one line of player input. Errors of type *UserError are meant
// for the player; anything else is a system failure.
func (h *Handler) Exec(ctx context.Context, g Game, out io.Writer, line string) (Outcome, error) {
	outcome := Outcome{}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return outcome, nil
	}

	compiled, ok := h.compiled[strings.ToLower(parts[0])]
	if !ok {
		return outcome, userErrorf("Unknown command: %s. Type 'help' for a list.", parts[0])
	}

	args, err := parseArgs(compiled.cmd.Inputs, parts[1:])
	if err != nil {
		return outcome, err
	}

	err = compiled.cmdFunc(ctx, &CommandContext{
		Game:    g,
		Out:     out,
		Inputs:  args,
		Outcome: &outcome,
	})
	return outcome, err
}

func parseArgs(specs []InputSpec, rawArgs []string) (map[string]ParsedArg, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}
	if len(rawArgs) < requiredCount {
		return nil, userErrorf("Expected at least %d argument(s), got %d", requiredCount, len(rawArgs))
	}

	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, userErrorf("Expected at most %d argument(s), got %d", len(specs), len(rawArgs))
	}

	args := make(map[string]ParsedArg, len(specs))
	argIndex := 0
	for i := range specs {
		spec := &specs[i]
		if argIndex >= len(rawArgs) {
			break
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		var value any = raw
		if spec.Type == InputTypeNumber {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, userErrorf("%s must be a number", spec.Name)
			}
			value = n
		}

		args[spec.Name] = ParsedArg{Spec: spec, Raw: raw, Value: value}
	}

	return args, nil
}
