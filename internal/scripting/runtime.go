package scripting

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/netscript-tools/material-optimizer/internal/logging"
	"github.com/netscript-tools/material-optimizer/internal/metrics"
	"github.com/netscript-tools/material-optimizer/pkg/core"
	"github.com/netscript-tools/material-optimizer/pkg/solver"
)

// GlobalName is the name of the table the bindings are registered under.
const GlobalName = "corp"

// Runtime executes scripts with the corp bindings installed.
type Runtime struct {
	// Out receives everything the script prints. Defaults to os.Stdout.
	Out io.Writer
	// Recorder receives every solve made by the script. Optional.
	Recorder *metrics.Recorder
}

// Run executes the script at path.
func (r *Runtime) Run(ctx context.Context, path string) error {
	return r.exec(ctx, path, func(state *lua.State) error {
		return lua.DoFile(state, path)
	})
}

// RunString executes a chunk of Lua source.
func (r *Runtime) RunString(ctx context.Context, chunk string) error {
	return r.exec(ctx, "chunk", func(state *lua.State) error {
		return lua.DoString(state, chunk)
	})
}

func (r *Runtime) exec(ctx context.Context, name string, run func(*lua.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := logging.FromContext(ctx)
	logger.V(logging.DEBUG).Info("Running script", "script", name)

	state := lua.NewState()
	lua.OpenLibraries(state)
	b := &bindings{
		ctx:       ctx,
		out:       r.output(),
		recorder:  r.Recorder,
		allocator: solver.StorageAllocator{Logger: logger},
	}
	b.register(state)

	if err := run(state); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

func (r *Runtime) output() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// bindings holds the state shared by the Go functions exposed to one script.
type bindings struct {
	ctx       context.Context
	out       io.Writer
	recorder  *metrics.Recorder
	allocator solver.StorageAllocator
}

func (b *bindings) register(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "optimal_materials", Function: b.optimalMaterials},
		{Name: "industries", Function: b.industries},
		{Name: "format", Function: b.format},
	}, 0)
	state.SetGlobal(GlobalName)

	state.PushGoFunction(b.print)
	state.SetGlobal("print")
}

func (b *bindings) checkContext(state *lua.State) {
	if err := b.ctx.Err(); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
}

func (b *bindings) optimalMaterials(state *lua.State) int {
	b.checkContext(state)
	name := lua.CheckString(state, 1)
	size := lua.CheckNumber(state, 2)

	industry, err := core.ParseIndustry(name)
	if err != nil {
		b.observeFailure(metrics.UnknownIndustry)
		lua.ArgumentError(state, 1, err.Error())
		return 0
	}
	sol, err := b.allocator.Solve(industry, size)
	if err != nil {
		b.observeFailure(industry.String())
		lua.Errorf(state, "%s", err.Error())
		return 0
	}
	if b.recorder != nil {
		b.recorder.ObserveSolve(sol)
	}

	state.NewTable()
	for _, m := range core.Materials() {
		state.PushNumber(sol.Allocation.Get(m))
		state.SetField(-2, m.String())
	}
	return 1
}

func (b *bindings) industries(state *lua.State) int {
	state.NewTable()
	for i, ind := range core.Industries() {
		state.PushString(ind.String())
		state.RawSetInt(-2, i+1)
	}
	return 1
}

// format renders a table keyed by material name. Missing materials count as zero.
func (b *bindings) format(state *lua.State) int {
	lua.CheckType(state, 1, lua.TypeTable)
	var alloc core.Allocation
	for _, m := range core.Materials() {
		state.Field(1, m.String())
		switch state.TypeOf(-1) {
		case lua.TypeNil:
		case lua.TypeNumber:
			alloc[m], _ = state.ToNumber(-1)
		default:
			lua.ArgumentError(state, 1, fmt.Sprintf("%s must be a number", m))
		}
		state.Pop(1)
	}
	state.PushString(alloc.String())
	return 1
}

func (b *bindings) print(state *lua.State) int {
	n := state.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, luaToString(state, i))
	}
	if _, err := io.WriteString(b.out, strings.Join(parts, "\t")+"\n"); err != nil {
		lua.Errorf(state, "%s", err.Error())
	}
	return 0
}

func (b *bindings) observeFailure(industry string) {
	if b.recorder != nil {
		b.recorder.ObserveFailure(industry)
	}
}

func luaToString(state *lua.State, index int) string {
	switch state.TypeOf(index) {
	case lua.TypeNil:
		return "nil"
	case lua.TypeBoolean:
		return fmt.Sprint(state.ToBoolean(index))
	case lua.TypeString, lua.TypeNumber:
		s, _ := state.ToString(index)
		return s
	default:
		return lua.TypeNameOf(state, index)
	}
}
