// Package track provides the track data decryption commands.
package track

import (
	"errors"
	"fmt"
	"io"

	"github.com/andrei-cloud/go_dukpt/internal/config"
	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewTrackCommand creates the track command group.
func NewTrackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track 2 decryption and parsing",
	}

	cmd.AddCommand(newDecryptCommand())
	cmd.AddCommand(newEncryptCommand())
	cmd.AddCommand(newParseCommand())

	return cmd
}

func newDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a DUKPT protected track 2",
		Long: `Decrypt an AES encrypted track 2 with the data session key derived
from the BDK and the KSN reported by the reader. Trailing zero padding is
removed unless --raw is given.`,
		RunE: runDecrypt,
	}

	cmd.Flags().String("ksn", "", "Key Serial Number, 20 hex characters")
	cmd.Flags().String("data", "", "Encrypted track in hex")
	addCipherFlags(cmd)
	cmd.Flags().Bool("raw", false, "Print the decrypted data without removing padding")
	cmd.Flags().Bool("parse", false, "Parse the decrypted track 2 into its fields")
	cmd.Flags().BoolP("interactive", "i", false, "Enter the inputs in an interactive form")

	return cmd
}

func newEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a clear track 2 the way a reader does (test data)",
		RunE:  runEncrypt,
	}

	cmd.Flags().String("ksn", "", "Key Serial Number, 20 hex characters")
	cmd.Flags().String("track", "", "Clear track 2, e.g. ;4111111111111111=2512101?")
	addCipherFlags(cmd)
	_ = cmd.MarkFlagRequired("ksn")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a clear track 2 into its fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, _ := cmd.Flags().GetString("track")
			t2, err := track.ParseTrack2(text)
			if err != nil {
				return err
			}
			printTrack2(cmd.OutOrStdout(), t2)

			return nil
		},
	}

	cmd.Flags().String("track", "", "Clear track 2")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", "AES mode (ecb, cbc); default from dukpt.mode")
	cmd.Flags().String("iv", "", "CBC initialization vector, 32 hex characters; default from dukpt.iv")
}

// newDecryptor builds a decryptor from the configuration, with --mode and
// --iv taking precedence.
func newDecryptor(cmd *cobra.Command) (*track.Decryptor, error) {
	if err := config.BindFlag("dukpt.mode", cmd.Flags().Lookup("mode")); err != nil {
		return nil, err
	}
	if err := config.BindFlag("dukpt.iv", cmd.Flags().Lookup("iv")); err != nil {
		return nil, err
	}

	bdkHex, err := config.BDK()
	if err != nil {
		return nil, err
	}
	cfg := config.Get()

	mode, err := track.ParseMode(cfg.Dukpt.Mode)
	if err != nil {
		return nil, err
	}
	opts := []track.Option{track.WithMode(mode)}
	if cfg.Dukpt.IV != "" {
		opts = append(opts, track.WithIV(cfg.Dukpt.IV))
	}

	return track.NewDecryptor(bdkHex, opts...)
}

func runDecrypt(cmd *cobra.Command, _ []string) error {
	ksnHex, _ := cmd.Flags().GetString("ksn")
	dataHex, _ := cmd.Flags().GetString("data")
	raw, _ := cmd.Flags().GetBool("raw")
	parse, _ := cmd.Flags().GetBool("parse")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if interactive {
		form, ok, err := runDecryptForm(ksnHex, dataHex, cmd.Flags().Lookup("mode").Value.String())
		if err != nil {
			return fmt.Errorf("interactive input failed: %w", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled.")
			return nil
		}
		ksnHex, dataHex = form.ksn, form.data
		if err := cmd.Flags().Set("mode", form.mode); err != nil {
			return err
		}
	}

	if ksnHex == "" || dataHex == "" {
		return errors.New("--ksn and --data are required")
	}

	d, err := newDecryptor(cmd)
	if err != nil {
		return err
	}

	plain, err := d.Decrypt(dataHex, ksnHex)
	if err != nil {
		return err
	}
	kcv, err := d.KeyCheck(ksnHex)
	if err != nil {
		return err
	}

	text := plain
	if !raw {
		text = track.TrimPadding(plain)
	}

	event := log.Info().
		Str("ksn", cryptoutils.NormalizeHex(ksnHex)).
		Str("session_kcv", kcv).
		Str("mode", d.Mode.String())
	t2, parseErr := track.ParseTrack2(plain)
	if parseErr == nil {
		event = event.Str("pan", t2.MaskedPAN())
	}
	event.Msg("track decrypted")

	out := cmd.OutOrStdout()
	if !parse {
		fmt.Fprintln(out, text)
		return nil
	}
	if parseErr != nil {
		return parseErr
	}
	printTrack2(out, t2)

	return nil
}

func runEncrypt(cmd *cobra.Command, _ []string) error {
	ksnHex, _ := cmd.Flags().GetString("ksn")
	text, _ := cmd.Flags().GetString("track")

	d, err := newDecryptor(cmd)
	if err != nil {
		return err
	}

	enc, err := d.Encrypt(text, ksnHex)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), enc)

	return nil
}

func printTrack2(out io.Writer, t2 track.Track2) {
	fmt.Fprintf(out, "PAN:           %s\n", t2.PAN)
	fmt.Fprintf(out, "Expiry (YYMM): %s\n", t2.Expiry)
	fmt.Fprintf(out, "Service code:  %s\n", t2.ServiceCode)
	fmt.Fprintf(out, "Discretionary: %s\n", t2.Discretionary)
}
