package main

import (
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"

	"github.com/wippyai/kumquat/luaquad"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT.lua [ARGS...]",
		Short: "Run a Lua script with the kumquat module loaded",
		Long: `Run a Lua script. The kumquat module is available as the global
"kumquat" and through require("kumquat"). Extra arguments are passed in
the global table arg, as arg[1], arg[2], ...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := luaquad.NewState(luaquad.WithOutput(a.stdout))
			defer state.Close()

			argt := state.L.NewTable()
			argt.RawSetInt(0, lua.LString(args[0]))
			for i, s := range args[1:] {
				argt.RawSetInt(i+1, lua.LString(s))
			}
			state.L.SetGlobal("arg", argt)

			a.log.Debug("running script")
			return state.DoFile(args[0])
		},
	}
}
