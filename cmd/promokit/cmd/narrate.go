package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodiet/promokit/internal/narration"
)

var (
	narrateText          string
	narrateTextFile      string
	narrateLang          string
	narrateOutput        string
	narrateSlow          bool
	narrateProvider      string
	narrateListLanguages bool
)

var narrateCmd = &cobra.Command{
	Use:     "narrate",
	Aliases: []string{"tts", "audio"},
	Short:   "Generates the narration audio",
	Long: `Converts the narration text to speech and writes it as an mp3.

The text comes from the config ([narration] text or text_file) and
defaults to the built-in Arabic Custodiet narration. The file is only
written once the speech service returned the complete audio.

Examples:
  promokit narrate
  promokit narrate --text-file configs/narration_ar.txt --slow
  promokit narrate --lang en --text "Custodiet. Security, reimagined."
  promokit narrate --provider openai --output output/voice.mp3`,
	RunE: runNarrate,
}

func init() {
	rootCmd.AddCommand(narrateCmd)

	narrateCmd.Flags().StringVar(&narrateText, "text", "", "Narration text (overrides the config)")
	narrateCmd.Flags().StringVar(&narrateTextFile, "text-file", "", "Read the narration text from a file")
	narrateCmd.Flags().StringVarP(&narrateLang, "lang", "l", "", "Language code (default: ar)")
	narrateCmd.Flags().StringVarP(&narrateOutput, "output", "o", "", "Output mp3 path")
	narrateCmd.Flags().BoolVar(&narrateSlow, "slow", false, "Speak slowly")
	narrateCmd.Flags().StringVar(&narrateProvider, "provider", "", "TTS provider: gtranslate or openai")
	narrateCmd.Flags().BoolVar(&narrateListLanguages, "list-languages", false, "List the gtranslate language codes and exit")
}

func runNarrate(cmd *cobra.Command, args []string) error {
	if narrateListLanguages {
		for _, code := range narration.Languages() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", code, narration.LanguageName(code))
		}
		return nil
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	n := s.cfg.Narration
	if cmd.Flags().Changed("text") {
		n.Text = narrateText
		n.TextFile = ""
	}
	overrideString(cmd, "text-file", &n.TextFile, narrateTextFile)
	overrideString(cmd, "lang", &n.Language, narrateLang)
	overrideString(cmd, "output", &n.Output, narrateOutput)
	if cmd.Flags().Changed("slow") {
		n.Slow = narrateSlow
	}

	tts := s.cfg.TTS
	overrideString(cmd, "provider", &tts.Provider, narrateProvider)

	text, err := n.ResolveText()
	if err != nil {
		return s.fail("Narration text could not be read", err)
	}

	synth, err := narration.NewSynthesizer(tts, nil)
	if err != nil {
		return s.fail("TTS provider could not be created", err)
	}

	gen := narration.NewGenerator(synth, tts.Timeout.Duration, s.log)
	result, err := gen.Generate(cmd.Context(), narration.Request{
		Text:     text,
		Language: n.Language,
		Slow:     n.Slow,
	}, n.Output)
	if err != nil {
		return s.fail("Narration failed", err)
	}

	printSummary(cmd.OutOrStdout(), "Narration saved", false,
		row{"Output", result.Output},
		row{"Provider", result.Provider},
		row{"Language", result.Language},
		row{"Characters", strconv.Itoa(result.Runes)},
		row{"Size", fmt.Sprintf("%.1f KB", float64(result.Bytes)/1024)},
	)
	return nil
}
