package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/morse"
	"github.com/verte-zerg/dahdit/internal/noise"
)

const (
	defaultGarbleRate = 0.1
)

var (
	inputFile string

	decodeStrict bool
	decodeRepair string

	switchFrom string
	switchTo   string

	repairModeName  string
	repairOrderName string

	garbleRate  float64
	garbleNoise string
	garbleSeed  int64
)

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputFile, "file", "", "read input from file")
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode text to Morse",
		RunE:  runEncodeCmd,
	}
	addFileFlag(cmd)
	return cmd
}

func runEncodeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}
	conv, err := morse.NewConverter(cfg.Format)
	if err != nil {
		return err
	}
	out := conv.Encode(text)
	if err := writeLine(cmd, out); err != nil {
		return err
	}
	recordConversion(cfg, model.Conversion{
		Op:     model.OpEncode,
		Format: cfg.Format.String(),
		Source: source,
		Input:  text,
		Output: out,
		Tokens: len(strings.Fields(out)),
	})
	return nil
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [morse...]",
		Short: "Decode Morse to text",
		RunE:  runDecodeCmd,
	}
	addFileFlag(cmd)
	cmd.Flags().BoolVar(&decodeStrict, "strict", false, "fail on invalid tokens")
	cmd.Flags().StringVar(&decodeRepair, "repair", "", "repair invalid tokens first with this mode")
	cmd.MarkFlagsMutuallyExclusive("strict", "repair")
	return cmd
}

func runDecodeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}
	conv, err := morse.NewConverter(cfg.Format)
	if err != nil {
		return err
	}

	rec := model.Conversion{
		Op:     model.OpDecode,
		Format: cfg.Format.String(),
		Source: source,
		Input:  text,
	}
	invalid := morse.InvalidTokens(text, cfg.Format)
	if decodeStrict && len(invalid) > 0 {
		return fmt.Errorf("invalid tokens: %s", strings.Join(invalid, " "))
	}

	morseText := text
	if cmd.Flags().Changed("repair") {
		mode, err := morse.ParseRepairMode(decodeRepair)
		if err != nil {
			return err
		}
		res := morse.RepairDetailed(text, mode, cfg.Format, cfg.RepairOrder)
		morseText = res.Text
		rec.Mode = mode.String()
		rec.Tokens = res.Kept + res.Repaired + res.Dropped
		rec.Repaired = res.Repaired
		rec.Dropped = res.Dropped
	} else {
		rec.Tokens = len(strings.Fields(text))
		rec.Dropped = len(invalid)
	}

	rec.Output = conv.Decode(morseText)
	if err := writeLine(cmd, rec.Output); err != nil {
		return err
	}
	recordConversion(cfg, rec)
	return nil
}

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch [morse...]",
		Short: "Re-code Morse between formats",
		RunE:  runSwitchCmd,
	}
	addFileFlag(cmd)
	cmd.Flags().StringVar(&switchFrom, "from", "", "source symbols (default: active format)")
	cmd.Flags().StringVar(&switchTo, "to", morse.DefaultFormat.String(), "target symbols")
	return cmd
}

func runSwitchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	from := cfg.Format
	if switchFrom != "" {
		from, err = morse.ParseFormat(switchFrom)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
	}
	to, err := morse.ParseFormat(switchTo)
	if err != nil {
		return fmt.Errorf("invalid --to value: %w", err)
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}

	out := morse.SwitchFormat(text, from, to)
	if err := writeLine(cmd, out); err != nil {
		return err
	}
	recordConversion(cfg, model.Conversion{
		Op:     model.OpSwitch,
		Format: from.String(),
		Target: to.String(),
		Source: source,
		Input:  text,
		Output: out,
		Tokens: len(strings.Fields(out)),
	})
	return nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [morse...]",
		Short: "Report invalid Morse tokens",
		RunE:  runValidateCmd,
	}
	addFileFlag(cmd)
	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}

	invalid := morse.InvalidTokens(text, cfg.Format)
	recordConversion(cfg, model.Conversion{
		Op:      model.OpValidate,
		Format:  cfg.Format.String(),
		Source:  source,
		Input:   text,
		Output:  strings.Join(invalid, " "),
		Tokens:  len(strings.Fields(text)),
		Dropped: len(invalid),
	})
	if len(invalid) == 0 {
		return writeLine(cmd, "valid")
	}
	for _, token := range invalid {
		if err := writeLine(cmd, token); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d invalid tokens", len(invalid))
}

func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair [morse...]",
		Short: "Repair invalid Morse tokens",
		RunE:  runRepairCmd,
	}
	addFileFlag(cmd)
	cmd.Flags().StringVar(&repairModeName, "mode", morse.DefaultRepairMode.String(), "repair mode")
	cmd.Flags().StringVar(&repairOrderName, "order", "", "comma-separated modes for the ordered mode")
	return cmd
}

func runRepairCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "mode", "order")
	if err != nil {
		return err
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}

	res := morse.RepairDetailed(text, cfg.RepairMode, cfg.Format, cfg.RepairOrder)
	if err := writeLine(cmd, res.Text); err != nil {
		return err
	}
	logErrf("kept %d, repaired %d, dropped %d\n", res.Kept, res.Repaired, res.Dropped)
	recordConversion(cfg, model.Conversion{
		Op:       model.OpRepair,
		Format:   cfg.Format.String(),
		Mode:     cfg.RepairMode.String(),
		Source:   source,
		Input:    text,
		Output:   res.Text,
		Tokens:   res.Kept + res.Repaired + res.Dropped,
		Repaired: res.Repaired,
		Dropped:  res.Dropped,
	})
	return nil
}

func newGarbleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garble [morse...]",
		Short: "Inject noise into Morse",
		RunE:  runGarbleCmd,
	}
	addFileFlag(cmd)
	cmd.Flags().Float64Var(&garbleRate, "rate", defaultGarbleRate, "probability of noise per symbol (0-1)")
	cmd.Flags().StringVar(&garbleNoise, "noise", noise.DefaultSet, "noise characters")
	cmd.Flags().Int64Var(&garbleSeed, "seed", 0, "random seed (default: time based)")
	return cmd
}

func runGarbleCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	if err := validateGarble(garbleRate, garbleNoise); err != nil {
		return err
	}
	text, source, err := readInput(cmd, args, inputFile)
	if err != nil {
		return err
	}

	g := noise.New()
	if cmd.Flags().Changed("seed") {
		g = noise.NewWithSeed(garbleSeed)
	}
	out := g.Garble(text, garbleRate, []rune(garbleNoise))
	if err := writeLine(cmd, out); err != nil {
		return err
	}
	recordConversion(cfg, model.Conversion{
		Op:      model.OpGarble,
		Format:  cfg.Format.String(),
		Source:  source,
		Input:   text,
		Output:  out,
		Tokens:  len(strings.Fields(out)),
		Dropped: len(morse.InvalidTokens(out, cfg.Format)),
	})
	return nil
}

func validateGarble(rate float64, noiseSet string) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("--rate must be between 0 and 1")
	}
	if noiseSet == "" {
		return fmt.Errorf("--noise must not be empty")
	}
	for _, r := range noiseSet {
		if unicode.IsSpace(r) {
			return fmt.Errorf("--noise must not contain whitespace")
		}
	}
	return nil
}
