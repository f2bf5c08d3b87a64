// Package dukpt provides the key derivation commands.
package dukpt

import (
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_dukpt/internal/config"
	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/dukpt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewDukptCommand creates the dukpt command group.
func NewDukptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dukpt",
		Short: "DUKPT key derivation",
		Long: `DUKPT (ANSI X9.24 TDEA) key derivation from a Base Derivation Key.
The BDK is read from --bdk, the dukpt.bdk config key or GODUKPT_DUKPT_BDK.`,
	}

	cmd.AddCommand(newIPEKCommand())
	cmd.AddCommand(newDeriveCommand())
	cmd.AddCommand(newSessionKeyCommand())
	cmd.AddCommand(newKCVCommand())

	return cmd
}

func newIPEKCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipek",
		Short: "Derive the Initial PIN Encryption Key for a KSN",
		RunE:  runIPEK,
	}
	cmd.Flags().String("ksn", "", "Key Serial Number, 20 hex characters")
	_ = cmd.MarkFlagRequired("ksn")

	return cmd
}

func newDeriveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the transaction key for a KSN",
		Long: `Derive the transaction key for a KSN and optionally apply a key variant:
none, pin, mac-request, mac-response, data-request or data-response.`,
		RunE: runDerive,
	}
	cmd.Flags().String("ksn", "", "Key Serial Number, 20 hex characters")
	cmd.Flags().String("variant", "none", "Key variant to apply")
	cmd.Flags().Uint32("counter", 0, "Replace the KSN transaction counter")
	_ = cmd.MarkFlagRequired("ksn")

	return cmd
}

func newSessionKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Derive the data encryption session key for a KSN",
		RunE:  runSessionKey,
	}
	cmd.Flags().String("ksn", "", "Key Serial Number, 20 hex characters")
	cmd.Flags().Uint32("counter", 0, "Replace the KSN transaction counter")
	_ = cmd.MarkFlagRequired("ksn")

	return cmd
}

func newKCVCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kcv",
		Short: "Calculate the check value of a clear key",
		RunE:  runKCV,
	}
	cmd.Flags().String("key", "", "Clear key in hex")
	cmd.Flags().String("type", "tdes", "Check value algorithm (tdes, aes)")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// inputs returns the configured BDK and the parsed --ksn flag. When --counter
// is given it replaces the counter bits of the KSN.
func inputs(cmd *cobra.Command) ([]byte, dukpt.KSN, error) {
	bdkHex, err := config.BDK()
	if err != nil {
		return nil, dukpt.KSN{}, err
	}
	ksnHex, _ := cmd.Flags().GetString("ksn")

	bdk, ksn, err := dukpt.ParseInputs(bdkHex, ksnHex)
	if err != nil {
		return nil, dukpt.KSN{}, err
	}

	if f := cmd.Flags().Lookup("counter"); f != nil && f.Changed {
		counter, _ := cmd.Flags().GetUint32("counter")
		if ksn, err = ksn.WithCounter(counter); err != nil {
			return nil, dukpt.KSN{}, err
		}
	}

	return bdk, ksn, nil
}

func runIPEK(cmd *cobra.Command, _ []string) error {
	bdk, ksn, err := inputs(cmd)
	if err != nil {
		return err
	}

	ipek, err := dukpt.IPEK(bdk, ksn)
	if err != nil {
		return fmt.Errorf("derive ipek: %w", err)
	}
	kcv, err := cryptoutils.KeyCV(cryptoutils.Raw2B(ipek), 6)
	if err != nil {
		return err
	}

	log.Debug().Str("ksn", ksn.String()).Str("kcv", string(kcv)).Msg("ipek derived")
	fmt.Fprintf(cmd.OutOrStdout(), "KSN:  %s\nIPEK: %s\nKCV:  %s\n", ksn, cryptoutils.Raw2Str(ipek), kcv)

	return nil
}

func runDerive(cmd *cobra.Command, _ []string) error {
	variantName, _ := cmd.Flags().GetString("variant")
	variant, err := dukpt.ParseVariant(variantName)
	if err != nil {
		return err
	}

	bdk, ksn, err := inputs(cmd)
	if err != nil {
		return err
	}

	key, err := dukpt.DeriveVariant(bdk, ksn, variant)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	kcv, err := cryptoutils.KeyCV(cryptoutils.Raw2B(key), 6)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "KSN:     %s\n", ksn)
	fmt.Fprintf(out, "Counter: %d\n", ksn.Counter())
	fmt.Fprintf(out, "Variant: %s\n", variant)
	fmt.Fprintf(out, "Key:     %s\n", cryptoutils.Raw2Str(key))
	fmt.Fprintf(out, "KCV:     %s\n", kcv)

	return nil
}

func runSessionKey(cmd *cobra.Command, _ []string) error {
	bdk, ksn, err := inputs(cmd)
	if err != nil {
		return err
	}

	key, err := dukpt.SessionKey(bdk, ksn)
	if err != nil {
		return fmt.Errorf("derive session key: %w", err)
	}
	kcv, err := cryptoutils.AESKeyCV(key)
	if err != nil {
		return err
	}

	log.Debug().Str("ksn", ksn.String()).Str("kcv", kcv).Msg("session key derived")
	fmt.Fprintf(cmd.OutOrStdout(), "KSN:         %s\nSession key: %s\nKCV:         %s\n",
		ksn, cryptoutils.Raw2Str(key), kcv)

	return nil
}

func runKCV(cmd *cobra.Command, _ []string) error {
	keyHex, _ := cmd.Flags().GetString("key")
	kind, _ := cmd.Flags().GetString("type")
	keyHex = cryptoutils.NormalizeHex(keyHex)

	switch strings.ToLower(kind) {
	case "tdes", "des":
		kcv, err := cryptoutils.KeyCV([]byte(keyHex), 6)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "KCV: %s\n", kcv)
	case "aes":
		key, err := cryptoutils.BytesFromHex(keyHex)
		if err != nil {
			return err
		}
		kcv, err := cryptoutils.AESKeyCV(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "KCV: %s\n", kcv)
	default:
		return fmt.Errorf("unknown check value type %q (use tdes or aes)", kind)
	}

	return nil
}
