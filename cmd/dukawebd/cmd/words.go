package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dukahub/dukaweb/pkg/config"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect the English/Swahili vocabulary",
}

var wordsCheckCmd = &cobra.Command{
	Use:   "check [vocabulary.yaml]",
	Short: "Report mismatched, blank or duplicated words",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, source, err := vocabularyFor(args)
		if err != nil {
			return err
		}

		problems := v.Validate()
		for _, problem := range problems {
			fmt.Fprintln(cmd.OutOrStdout(), problem)
		}

		if len(problems) != 0 {
			return fmt.Errorf("%s: %d problem(s)", source, len(problems))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d word pairs ok\n", source, len(v.English))
		return nil
	},
}

var wordsTranslateCmd = &cobra.Command{
	Use:   "translate <english|swahili> <word>...",
	Short: "Translate words the way pages will",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !translate.Known(args[0]) {
			return fmt.Errorf("unknown language %q", args[0])
		}

		v, _, err := vocabularyFor(nil)
		if err != nil {
			return err
		}

		tr := translate.NewTranslator(v)
		fmt.Fprintln(cmd.OutOrStdout(), tr.Translate(translate.ParseLanguage(args[0]), strings.Join(args[1:], " ")))
		return nil
	},
}

func init() {
	wordsCmd.AddCommand(wordsCheckCmd, wordsTranslateCmd)
	rootCmd.AddCommand(wordsCmd)
}

// vocabularyFor picks the file named on the command line, then DUKA_WORDS_FILE from the env
// file, then the built-in vocabulary. A missing env file is not an error here.
func vocabularyFor(args []string) (translate.Vocabulary, string, error) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		c := config.NewDotenvConfig(viper.GetString("env-file"))
		if err := c.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return translate.Vocabulary{}, "", err
		}
		path = c.GetKey(config.WordsFileKey)
	}

	if path == "" {
		return translate.DefaultVocabulary(), "built-in vocabulary", nil
	}

	v, err := translate.LoadVocabulary(path)
	return v, path, err
}
