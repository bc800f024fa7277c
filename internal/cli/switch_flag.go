package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Switches are the on/off flags of treebrowse: --hidden, --clipboard, --git,
// --no-gitignore, --no-ignore, --global and --force. A bare switch turns the
// setting on. An explicit literal may follow after "=" or as the next argument,
// so `--clipboard off` works the same as `--clipboard=off`.

const (
	switchFlagType         = "bool"
	switchImplicitValue    = "true"
	switchAcceptedLiterals = "yes, no, on, off, true, false, 1, 0"
	errorSwitchValueFormat = "--%s expects one of %s, got %q"
)

var switchLiterals = map[string]bool{
	"yes":   true,
	"y":     true,
	"on":    true,
	"true":  true,
	"t":     true,
	"1":     true,
	"no":    false,
	"n":     false,
	"off":   false,
	"false": false,
	"f":     false,
	"0":     false,
}

func parseSwitchLiteral(text string) (bool, bool) {
	value, known := switchLiterals[strings.ToLower(strings.TrimSpace(text))]
	return value, known
}

// switchValue is the pflag.Value behind every switch.
type switchValue struct {
	target *bool
	name   string
}

func (value *switchValue) Set(text string) error {
	if strings.TrimSpace(text) == "" {
		*value.target = true
		return nil
	}
	parsed, known := parseSwitchLiteral(text)
	if !known {
		return fmt.Errorf(errorSwitchValueFormat, value.name, switchAcceptedLiterals, text)
	}
	*value.target = parsed
	return nil
}

func (value *switchValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *switchValue) Type() string {
	return switchFlagType
}

// addSwitchFlag registers name on flagSet as an off-by-default switch.
func addSwitchFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&switchValue{target: target, name: name}, name, usage)
	flag := flagSet.Lookup(name)
	flag.DefValue = strconv.FormatBool(false)
	flag.NoOptDefVal = switchImplicitValue
}

// joinSwitchValues rewrites `--switch literal` into `--switch=literal` for
// every switch known to command or its subcommands. Arguments after "--" and
// values that are not switch literals, such as a path, are left alone.
func joinSwitchValues(command *cobra.Command, arguments []string) []string {
	switches := switchFlagNames(command)
	joined := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			return append(joined, arguments[index:]...)
		}
		name, isLongFlag := strings.CutPrefix(argument, "--")
		if isLongFlag && switches[name] && index+1 < len(arguments) {
			if _, known := parseSwitchLiteral(arguments[index+1]); known {
				joined = append(joined, argument+"="+arguments[index+1])
				index++
				continue
			}
		}
		joined = append(joined, argument)
	}
	return joined
}

func switchFlagNames(command *cobra.Command) map[string]bool {
	names := map[string]bool{}
	var visit func(*cobra.Command)
	visit = func(current *cobra.Command) {
		for _, flagSet := range []*pflag.FlagSet{current.PersistentFlags(), current.Flags()} {
			flagSet.VisitAll(func(flag *pflag.Flag) {
				if _, isSwitch := flag.Value.(*switchValue); isSwitch {
					names[flag.Name] = true
				}
			})
		}
		for _, child := range current.Commands() {
			visit(child)
		}
	}
	visit(command)
	return names
}
