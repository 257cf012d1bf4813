package commands

import (
	normjson "github.com/erraggy/normjson"
	"github.com/erraggy/normjson/internal/cliutil"
)

// VersionCmd prints build information.
type VersionCmd struct{}

// Run prints the version, commit, build time and Go version.
func (c *VersionCmd) Run(g *Globals) error {
	cliutil.Writef(g.Stdout, "normjson v%s\n", normjson.Version())
	cliutil.Writef(g.Stdout, "  commit: %s\n", normjson.Commit())
	cliutil.Writef(g.Stdout, "  built:  %s\n", normjson.BuildTime())
	cliutil.Writef(g.Stdout, "  go:     %s\n", normjson.GoVersion())
	return nil
}
