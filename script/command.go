package script

const (
	cmdComposite   = "composite"
	cmdLeaf        = "leaf"
	cmdOp          = "op"
	cmdAll         = "all"
	cmdAdd         = "add"
	cmdRemove      = "remove"
	cmdGet         = "get"
	cmdRelease     = "release"
	cmdDump        = "dump"
	cmdExpectLen   = "expect-len"
	cmdExpectError = "expect-error"
)

type command struct {
	minArgs int
	maxArgs int
	usage   string
	run     func(r *Runner, st Step) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		cmdComposite:   {1, 1, "composite <name>", (*Runner).doComposite},
		cmdLeaf:        {1, 1, "leaf <name>", (*Runner).doLeaf},
		cmdOp:          {1, 1, "op <name>", (*Runner).doOp},
		cmdAll:         {1, 1, "all <name>", (*Runner).doAll},
		cmdAdd:         {2, 2, "add <parent> <child>", (*Runner).doAdd},
		cmdRemove:      {2, 2, "remove <parent> <child>", (*Runner).doRemove},
		cmdGet:         {2, 3, "get <parent> <index> [bind-name]", (*Runner).doGet},
		cmdRelease:     {1, 1, "release <name>", (*Runner).doRelease},
		cmdDump:        {1, 1, "dump <name>", (*Runner).doDump},
		cmdExpectLen:   {2, 2, "expect-len <name> <n>", (*Runner).doExpectLen},
		cmdExpectError: {1, 1, "expect-error <error-name|any>", nil},
	}
}

// Usage lists every command with its arguments.
func Usage() []string {
	return []string{
		commands[cmdComposite].usage,
		commands[cmdLeaf].usage,
		commands[cmdOp].usage,
		commands[cmdAll].usage,
		commands[cmdAdd].usage,
		commands[cmdRemove].usage,
		commands[cmdGet].usage,
		commands[cmdRelease].usage,
		commands[cmdDump].usage,
		commands[cmdExpectLen].usage,
		commands[cmdExpectError].usage,
	}
}
