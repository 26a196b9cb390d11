package domain

// DefaultEngineName is the engine used when a task or dispatch carries no
// engine tag, and the fallback for unrecognized tags.
const DefaultEngineName = "gemini"

// builtinEngines maps engine tags to the command that launches the agent
// binary. The mission prompt is appended by the generated launch script as
// a single shell-quoted argument ("$PROMPT"), never interpolated here.
var builtinEngines = map[string]string{
	"claude":   "claude",
	"opencode": "opencode",
	"gemini":   "gemini --approval-mode yolo",
}

// ResolveEngine maps an engine tag to its launch command, consulting
// overrides (from config) before the builtin table. Unrecognized tags fall
// back to the default engine; that is policy, not an error.
func ResolveEngine(name string, overrides map[string]string) (resolved, command string) {
	if name == "" {
		name = DefaultEngineName
	}
	if cmd, ok := overrides[name]; ok && cmd != "" {
		return name, cmd
	}
	if cmd, ok := builtinEngines[name]; ok {
		return name, cmd
	}
	return DefaultEngineName, builtinEngines[DefaultEngineName]
}

// KnownEngines returns the builtin engine tags.
func KnownEngines() []string {
	return []string{"claude", "gemini", "opencode"}
}
