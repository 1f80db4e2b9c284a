package cli

import (
	"fmt"
	"io"
	"strings"
)

const programName = "progressdemo"

// FlagCompletion describes a command-line flag for completion scripts. Every
// generator reads flagRegistry, so a new flag only needs one entry there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values; nil for booleans
	ValueName string   // zsh value label
	IsFile    bool     // takes a file path
	Dynamic   bool     // values are the scenario names passed at generation time
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "scenario", Help: "Workload to run", Dynamic: true, ValueName: "scenario"},
	{Long: "workers", Help: "Concurrent workers", Values: []string{"1", "2", "4", "8", "16"}, ValueName: "count"},
	{Long: "steps", Help: "Reports per worker", Values: []string{"10", "25", "50", "100"}, ValueName: "count"},
	{Long: "delay", Help: "Pause between reports", Values: []string{"10ms", "40ms", "100ms"}, ValueName: "duration"},
	{Long: "style", Help: "Progress display", Values: []string{"bar", "spinner", "tui", "none"}, ValueName: "style"},
	{Long: "width", Help: "Bar width ratio", Values: []string{"0.4", "0.6", "0.8"}, ValueName: "ratio"},
	{Long: "status-line", Help: "Show the status on its own line"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "2m", "5m"}, ValueName: "duration"},
	{Long: "log-level", Help: "Log verbosity", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "metrics-out", Help: "Write Prometheus metrics to file", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string, scenarios []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(scenarios)
	case "zsh":
		script = zshCompletion(scenarios)
	case "fish":
		script = fishCompletion(scenarios)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func values(f FlagCompletion, scenarios []string) []string {
	if f.Dynamic {
		return scenarios
	}
	return f.Values
}

func bashCompletion(scenarios []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
		var body string
		switch vals := values(f, scenarios); {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(vals) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(vals, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        --%s)\n            %s\n            return 0\n            ;;\n", f.Long, body)
	}

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"

    case "${prev}" in
%[3]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, programName, strings.Join(opts, " "), cases.String())
}

func zshCompletion(scenarios []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		suffix := ""
		switch vals := values(f, scenarios); {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(vals) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
		}
		if f.Short != "" {
			args = append(args, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
		} else {
			args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		}
	}

	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

_%[1]s() {
    _arguments -s \
%[2]s
}

_%[1]s "$@"
`, programName, strings.Join(args, " \\\n"))
}

func fishCompletion(scenarios []string) string {
	lines := []string{
		"# Fish completion script for " + programName,
		"# Add this to ~/.config/fish/completions/" + programName + ".fish",
		"",
		"complete -c " + programName + " -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c " + programName}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		if vals := values(f, scenarios); f.IsFile {
			parts = append(parts, "-rF")
		} else if len(vals) > 0 {
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
