package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetRootCmd creates a fresh root command for testing.
func resetRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statoverlay",
		Short: "Debug overlay for multiplayer statistics",
	}
}

func TestCompletionBashGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, resetRootCmd().GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "# bash completion for statoverlay")
	assert.Contains(t, output, "__statoverlay_debug")
	assert.Contains(t, output, "complete -o default -F __start_statoverlay statoverlay")
}

func TestCompletionZshGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, resetRootCmd().GenZshCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "#compdef statoverlay")
	assert.Contains(t, output, "_statoverlay()")
}

func TestCompletionFishGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, resetRootCmd().GenFishCompletion(&buf, true))
	output := buf.String()

	assert.Contains(t, output, "fish completion for statoverlay")
	assert.Contains(t, output, "complete -c statoverlay")
}

func TestCompletionPowershellGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, resetRootCmd().GenPowerShellCompletion(&buf))
	output := buf.String()

	assert.Contains(t, strings.ToLower(output), "powershell completion")
	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_statoverlay")
	assert.Contains(t, output, "_statoverlay_root_command")

	// Commands with local flags get their own functions.
	assert.Contains(t, output, "_statoverlay_run()")
	assert.Contains(t, output, "_statoverlay_render()")
	assert.Contains(t, output, "_statoverlay_config_init()")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
}

func TestConfigSetCompletesKeys(t *testing.T) {
	keys, directive := configSetCmd.ValidArgsFunction(configSetCmd, nil, "")
	assert.Contains(t, keys, "player_name")
	assert.Contains(t, keys, "window.width")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	values, _ := configSetCmd.ValidArgsFunction(configSetCmd, []string{"player_name"}, "")
	assert.Empty(t, values)
}
